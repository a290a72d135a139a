package logics_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
	"listloop-server/pkg/errors"
)

func TestMessageService(t *testing.T) {
	ctx := context.Background()

	t.Run("message between participants is stored and pushed", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		collab := e.seedUser(t, "collab")
		list := e.seedList(t, owner.ID, "Shared")
		e.seedCollaborator(t, list.ID, collab.ID, models.CollaboratorAccepted)

		message, err := e.messages.Send(ctx, list.ID, owner.ID, collab.ID, "ping")
		require.NoError(t, err)
		assert.Equal(t, "ping", message.Content)
		require.NotNil(t, message.Sender)
		assert.Equal(t, owner.ID, message.Sender.ID)

		events := e.broker.events()
		require.Len(t, events, 1)
		assert.Equal(t, realtime.UserChannel(collab.ID), events[0].Channel)
		assert.Equal(t, realtime.EventNewMessage, events[0].Name)
	})

	t.Run("receiver without access is invalid", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		stranger := e.seedUser(t, "stranger")
		list := e.seedList(t, owner.ID, "Shared")

		_, err := e.messages.Send(ctx, list.ID, owner.ID, stranger.ID, "ping")
		assert.Equal(t, errors.ErrInvalidArgument, errors.Code(err))
	})

	t.Run("sender without access is forbidden", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		stranger := e.seedUser(t, "stranger")
		list := e.seedList(t, owner.ID, "Shared")

		_, err := e.messages.Send(ctx, list.ID, stranger.ID, owner.ID, "ping")
		assert.Equal(t, errors.ErrUnauthorized, errors.Code(err))
	})

	t.Run("thread is scoped to the pair and ordered", func(t *testing.T) {
		e := newEnv(t)
		owner := e.seedUser(t, "owner")
		collab := e.seedUser(t, "collab")
		other := e.seedUser(t, "other")
		list := e.seedList(t, owner.ID, "Shared")
		e.seedCollaborator(t, list.ID, collab.ID, models.CollaboratorAccepted)
		e.seedCollaborator(t, list.ID, other.ID, models.CollaboratorAccepted)

		_, err := e.messages.Send(ctx, list.ID, owner.ID, collab.ID, "first")
		require.NoError(t, err)
		_, err = e.messages.Send(ctx, list.ID, collab.ID, owner.ID, "second")
		require.NoError(t, err)
		_, err = e.messages.Send(ctx, list.ID, owner.ID, other.ID, "unrelated")
		require.NoError(t, err)

		thread, err := e.messages.Thread(ctx, list.ID, owner.ID, collab.ID)
		require.NoError(t, err)
		require.Len(t, thread, 2)
		assert.Equal(t, "first", thread[0].Content)
		assert.Equal(t, "second", thread[1].Content)
	})
}
