package listview

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"listloop-server/internal/models"
	"listloop-server/internal/utils"
	"listloop-server/pkg/errors"
)

// State is the lifecycle of one list session.
type State int

const (
	// StateLoading means the initial fetch is in flight.
	StateLoading State = iota
	// StateReady means a snapshot is held and mutable.
	StateReady
	// StateError means the fetch failed; Retry restarts the session.
	StateError
)

// Fetcher loads the authoritative tree for a list.
type Fetcher interface {
	FetchList(ctx context.Context, listID string) (*ListTree, error)
}

// AppendCommand describes an item append issued by the session.
type AppendCommand struct {
	ItemType string
	Content  string
	ParentID string
}

// CreatedItem is the server's confirmation of an append.
type CreatedItem struct {
	ID        string
	Content   string
	Completed bool
	Order     int
}

// Commands is the server mutation surface the session drives. Every
// call carries the session's origin connection so the resulting
// broadcast skips this client.
type Commands interface {
	AppendItem(ctx context.Context, listID string, cmd AppendCommand) (*CreatedItem, error)
	PatchItem(ctx context.Context, listID, itemType, itemID string, patch models.ItemPatch) error
	DeleteItem(ctx context.Context, listID, itemType, itemID string) error
}

// Session keeps one list's tree in sync across an initial fetch, local
// optimistic mutations, and inbound broadcast events. Mutations apply
// locally first under a temporary ID and roll back to the pre-mutation
// snapshot on server failure.
type Session struct {
	listID   string
	fetcher  Fetcher
	commands Commands
	logger   *zap.Logger

	mu    sync.Mutex
	state State
	tree  *ListTree
	err   error
}

// NewSession creates a session for one list. Start must be called
// before any mutation.
func NewSession(listID string, fetcher Fetcher, commands Commands, logger *zap.Logger) *Session {
	return &Session{
		listID:   listID,
		fetcher:  fetcher,
		commands: commands,
		logger:   logger,
		state:    StateLoading,
	}
}

// Start performs the initial fetch, moving to Ready or Error.
func (s *Session) Start(ctx context.Context) error {
	tree, err := s.fetcher.FetchList(ctx, s.listID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateError
		s.err = err
		return err
	}
	s.state = StateReady
	s.tree = tree
	s.err = nil
	return nil
}

// Retry restarts a failed session.
func (s *Session) Retry(ctx context.Context) error {
	s.mu.Lock()
	s.state = StateLoading
	s.err = nil
	s.mu.Unlock()
	return s.Start(ctx)
}

// Refresh refetches authoritative state, clearing staleness.
func (s *Session) Refresh(ctx context.Context) error {
	tree, err := s.fetcher.FetchList(ctx, s.listID)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tree = tree
	return nil
}

// State reports the session lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err reports the fetch error when the session is in Error.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Snapshot returns a deep copy of the current tree for rendering.
func (s *Session) Snapshot() *ListTree {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tree.Clone()
}

// AppendItem optimistically inserts the item under a temporary ID,
// then swaps in the server's ID on confirmation. On failure the
// pre-mutation snapshot is restored and the error returned. The final
// item ID is returned on success.
func (s *Session) AppendItem(ctx context.Context, itemType, content, parentID string) (string, error) {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return "", errors.New("session is not ready")
	}
	snapshot := s.tree.Clone()

	tempID := utils.GenerateTempID()
	switch itemType {
	case models.ItemTypeTask:
		s.tree.Tasks = append(s.tree.Tasks, TaskNode{
			ID:      tempID,
			Content: content,
			Order:   s.tree.maxTaskOrder() + 1,
		})
	case models.ItemTypeSubTask:
		parent := s.tree.findTask(parentID)
		if parent == nil {
			s.mu.Unlock()
			return "", errors.NotFound("parent task not in view")
		}
		parent.SubTasks = append(parent.SubTasks, SubTaskNode{
			ID:      tempID,
			Content: content,
			Order:   maxSubTaskOrder(parent) + 1,
		})
	default:
		s.mu.Unlock()
		return "", errors.Invalid("itemType must be task or subtask")
	}
	s.mu.Unlock()

	created, err := s.commands.AppendItem(ctx, s.listID, AppendCommand{
		ItemType: itemType,
		Content:  content,
		ParentID: parentID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tree = snapshot
		return "", err
	}

	// Reconcile the temporary ID with the authoritative one.
	switch itemType {
	case models.ItemTypeTask:
		if node := s.tree.findTask(tempID); node != nil {
			node.ID = created.ID
			node.Order = created.Order
		}
	case models.ItemTypeSubTask:
		if _, node := s.tree.findSubTask(tempID); node != nil {
			node.ID = created.ID
			node.Order = created.Order
		}
	}
	s.tree.sortByOrder()
	return created.ID, nil
}

// ToggleCompleted optimistically flips the completed flag, rolling
// back on server failure.
func (s *Session) ToggleCompleted(ctx context.Context, itemType, itemID string) error {
	return s.patchLocally(ctx, itemType, itemID, func(completed *bool, _ *string) models.ItemPatch {
		flipped := !*completed
		*completed = flipped
		return models.ItemPatch{Completed: &flipped}
	})
}

// EditContent optimistically rewrites the item's text, rolling back on
// server failure.
func (s *Session) EditContent(ctx context.Context, itemType, itemID, content string) error {
	return s.patchLocally(ctx, itemType, itemID, func(_ *bool, existing *string) models.ItemPatch {
		*existing = content
		return models.ItemPatch{Content: &content}
	})
}

// patchLocally applies mutate under the lock, then confirms with the
// server, restoring the pre-mutation snapshot on failure.
func (s *Session) patchLocally(ctx context.Context, itemType, itemID string, mutate func(completed *bool, content *string) models.ItemPatch) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return errors.New("session is not ready")
	}
	snapshot := s.tree.Clone()

	var patch models.ItemPatch
	switch itemType {
	case models.ItemTypeTask:
		node := s.tree.findTask(itemID)
		if node == nil {
			s.mu.Unlock()
			return errors.NotFound("item not in view")
		}
		patch = mutate(&node.Completed, &node.Content)
	case models.ItemTypeSubTask:
		_, node := s.tree.findSubTask(itemID)
		if node == nil {
			s.mu.Unlock()
			return errors.NotFound("item not in view")
		}
		patch = mutate(&node.Completed, &node.Content)
	default:
		s.mu.Unlock()
		return errors.Invalid("itemType must be task or subtask")
	}
	s.mu.Unlock()

	err := s.commands.PatchItem(ctx, s.listID, itemType, itemID, patch)
	if err != nil {
		s.mu.Lock()
		s.tree = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// DeleteItem optimistically removes the item, rolling back on server
// failure.
func (s *Session) DeleteItem(ctx context.Context, itemType, itemID string) error {
	s.mu.Lock()
	if s.state != StateReady {
		s.mu.Unlock()
		return errors.New("session is not ready")
	}
	snapshot := s.tree.Clone()

	var removed bool
	switch itemType {
	case models.ItemTypeTask:
		removed = s.tree.removeTask(itemID)
	case models.ItemTypeSubTask:
		removed = s.tree.removeSubTask(itemID)
	default:
		s.mu.Unlock()
		return errors.Invalid("itemType must be task or subtask")
	}
	if !removed {
		s.mu.Unlock()
		return errors.NotFound("item not in view")
	}
	s.mu.Unlock()

	err := s.commands.DeleteItem(ctx, s.listID, itemType, itemID)
	if err != nil {
		s.mu.Lock()
		s.tree = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}
