package logics_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"listloop-server/internal/logics"
	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
	"listloop-server/internal/repositories"
	"listloop-server/internal/utils"
)

// recordingBroker captures every publish so tests can assert on event
// names, channels, payloads, and echo-suppression markers.
type recordingBroker struct {
	mu        sync.Mutex
	failAll   bool
	published []publishedEvent
}

type publishedEvent struct {
	Channel  string
	Name     string
	Payload  interface{}
	Excluded string
}

func (b *recordingBroker) Publish(_ context.Context, channel, name string, payload interface{}, opts ...realtime.PublishOption) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failAll {
		return assertAnError
	}
	settings := realtime.ResolvePublishOptions(opts...)
	b.published = append(b.published, publishedEvent{
		Channel:  channel,
		Name:     name,
		Payload:  payload,
		Excluded: settings.ExcludeSocket,
	})
	return nil
}

func (b *recordingBroker) Subscribe(_ context.Context, _, _ string) (<-chan realtime.Event, error) {
	ch := make(chan realtime.Event)
	close(ch)
	return ch, nil
}

func (b *recordingBroker) Close() error { return nil }

func (b *recordingBroker) events() []publishedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]publishedEvent, len(b.published))
	copy(out, b.published)
	return out
}

var assertAnError = errFailingBroker{}

type errFailingBroker struct{}

func (errFailingBroker) Error() string { return "broker unavailable" }

// env is one assembled service stack on an in-memory database.
type env struct {
	db     *gorm.DB
	broker *recordingBroker

	access      *logics.AccessService
	lists       *logics.ListService
	items       *logics.ItemService
	comments    *logics.CommentService
	invitations *logics.InvitationService
	messages    *logics.MessageService
	users       *logics.UserService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, repositories.AutoMigrateInOrder(db))

	logger := zap.NewNop()
	broker := &recordingBroker{}
	cursorManager := utils.NewCursorManager("test-cursor-secret")

	access := logics.NewAccessService(db)
	lists := logics.NewListService(db, access, cursorManager, logger)
	items := logics.NewItemService(db, access, lists, broker, logger)

	return &env{
		db:          db,
		broker:      broker,
		access:      access,
		lists:       lists,
		items:       items,
		comments:    logics.NewCommentService(db, access, broker, logger),
		invitations: logics.NewInvitationService(db, access, broker, logger),
		messages:    logics.NewMessageService(db, access, broker, logger),
		users:       logics.NewUserService(db),
	}
}

func (e *env) seedUser(t *testing.T, username string) *models.User {
	t.Helper()
	user := &models.User{
		ID:       utils.GenerateUniqueID(utils.PrefixUser),
		Username: username,
		Email:    username + "@example.com",
	}
	require.NoError(t, e.db.Create(user).Error)
	return user
}

func (e *env) seedList(t *testing.T, ownerID, title string) *models.TodoList {
	t.Helper()
	list, err := e.lists.CreateList(context.Background(), ownerID, title, "")
	require.NoError(t, err)
	return list
}

func (e *env) seedCollaborator(t *testing.T, listID, userID, status string) *models.Collaborator {
	t.Helper()
	collab := &models.Collaborator{
		ID:         utils.GenerateUniqueID(utils.PrefixCollab),
		TodoListID: listID,
		UserID:     userID,
		Status:     status,
	}
	require.NoError(t, e.db.Create(collab).Error)
	return collab
}

func (e *env) seedTask(t *testing.T, listID, content string, order int) *models.Task {
	t.Helper()
	task := &models.Task{
		ID:         utils.GenerateUniqueID(utils.PrefixTask),
		TodoListID: listID,
		Content:    content,
		Order:      order,
	}
	require.NoError(t, e.db.Create(task).Error)
	return task
}
