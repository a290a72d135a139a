package logics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listloop-server/internal/logics"
	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
	"listloop-server/pkg/errors"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()

	t.Run("task comment sets only the task foreign key", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		list := e.seedList(t, owner.ID, "Groceries")
		task := e.seedTask(t, list.ID, "Buy fruit", 0)

		comment, err := e.comments.CreateComment(ctx, list.ID, owner.ID, "sock-1",
			models.ItemTypeTask, task.ID, "Get the ripe ones")
		require.NoError(t, err)

		require.NotNil(t, comment.TaskID)
		assert.Equal(t, task.ID, *comment.TaskID)
		assert.Nil(t, comment.SubTaskID)
		require.NotNil(t, comment.Author)
		assert.Equal(t, owner.ID, comment.Author.ID)

		events := e.broker.events()
		require.Len(t, events, 1)
		assert.Equal(t, realtime.EventCommentAdded, events[0].Name)
		assert.Equal(t, "sock-1", events[0].Excluded)
	})

	t.Run("subtask comment sets only the subtask foreign key", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		list := e.seedList(t, owner.ID, "Groceries")
		task := e.seedTask(t, list.ID, "Buy fruit", 0)
		created, err := e.items.Append(ctx, list.ID, owner.ID, "", logics.AppendInput{
			ItemType: models.ItemTypeSubTask, Content: "Apples", ParentID: task.ID,
		})
		require.NoError(t, err)
		sub := created.(models.SubTask)

		comment, err := e.comments.CreateComment(ctx, list.ID, owner.ID, "",
			models.ItemTypeSubTask, sub.ID, "Granny Smith")
		require.NoError(t, err)

		require.NotNil(t, comment.SubTaskID)
		assert.Equal(t, sub.ID, *comment.SubTaskID)
		assert.Nil(t, comment.TaskID)
	})

	t.Run("comment against a foreign list's item is not found", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		listA := e.seedList(t, owner.ID, "A")
		listB := e.seedList(t, owner.ID, "B")
		task := e.seedTask(t, listA.ID, "Buy fruit", 0)

		_, err := e.comments.CreateComment(ctx, listB.ID, owner.ID, "",
			models.ItemTypeTask, task.ID, "misdirected")
		assert.Equal(t, errors.ErrNotFound, errors.Code(err))
	})

	t.Run("list returns comments oldest first", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		list := e.seedList(t, owner.ID, "Groceries")
		task := e.seedTask(t, list.ID, "Buy fruit", 0)

		_, err := e.comments.CreateComment(ctx, list.ID, owner.ID, "", models.ItemTypeTask, task.ID, "first")
		require.NoError(t, err)
		_, err = e.comments.CreateComment(ctx, list.ID, owner.ID, "", models.ItemTypeTask, task.ID, "second")
		require.NoError(t, err)

		comments, err := e.comments.ListComments(ctx, list.ID, owner.ID, models.ItemTypeTask, task.ID)
		require.NoError(t, err)
		require.Len(t, comments, 2)
		assert.Equal(t, "first", comments[0].Content)
		assert.Equal(t, "second", comments[1].Content)
	})

	t.Run("stranger cannot read comments", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		stranger := e.seedUser(t, "stranger")
		list := e.seedList(t, owner.ID, "Groceries")
		task := e.seedTask(t, list.ID, "Buy fruit", 0)

		_, err := e.comments.ListComments(ctx, list.ID, stranger.ID, models.ItemTypeTask, task.ID)
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	})
}
