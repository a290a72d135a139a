package listview

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
)

// Consume applies events from a broker subscription until the channel
// closes or the context ends.
func (s *Session) Consume(ctx context.Context, events <-chan realtime.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			s.ApplyEvent(event)
		}
	}
}

// ApplyEvent merges one broadcast event into the tree. Events are
// authoritative facts: they apply in arrival order, merge only the
// fields they name, and never need rollback. Unknown event names and
// undecodable payloads are logged and skipped.
func (s *Session) ApplyEvent(event realtime.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return
	}

	switch event.Name {
	case realtime.EventItemAdded:
		s.applyItemAdded(event.Payload)
	case realtime.EventItemUpdated:
		s.applyItemUpdated(event.Payload)
	case realtime.EventItemDeleted:
		s.applyItemDeleted(event.Payload)
	case realtime.EventCommentAdded:
		s.applyCommentAdded(event.Payload)
	case realtime.EventListReordered:
		// Sibling positions changed wholesale; flag for refetch.
		s.tree.Stale = true
	default:
		s.logger.Warn("unknown event ignored", zap.String("event", event.Name))
	}
}

type itemAddedPayload struct {
	Item struct {
		ID        string `json:"id"`
		Content   string `json:"content"`
		Completed bool   `json:"completed"`
		Order     int    `json:"order"`
	} `json:"item"`
	ItemType string `json:"itemType"`
	ParentID string `json:"parentId"`
}

func (s *Session) applyItemAdded(raw json.RawMessage) {
	var p itemAddedPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("undecodable item-added payload", zap.Error(err))
		return
	}

	// A redelivered event must not produce a second visible entry.
	switch p.ItemType {
	case models.ItemTypeTask:
		if s.tree.findTask(p.Item.ID) != nil {
			return
		}
		s.tree.Tasks = append(s.tree.Tasks, TaskNode{
			ID:        p.Item.ID,
			Content:   p.Item.Content,
			Completed: p.Item.Completed,
			Order:     p.Item.Order,
		})
	case models.ItemTypeSubTask:
		if _, existing := s.tree.findSubTask(p.Item.ID); existing != nil {
			return
		}
		parent := s.tree.findTask(p.ParentID)
		if parent == nil {
			// Parent unknown to this view; the next refetch will pick it up.
			s.tree.Stale = true
			return
		}
		parent.SubTasks = append(parent.SubTasks, SubTaskNode{
			ID:        p.Item.ID,
			Content:   p.Item.Content,
			Completed: p.Item.Completed,
			Order:     p.Item.Order,
		})
	}
	s.tree.sortByOrder()
}

func (s *Session) applyItemUpdated(raw json.RawMessage) {
	var p realtime.ItemUpdated
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("undecodable item-updated payload", zap.Error(err))
		return
	}

	var completed *bool
	var content *string
	var order *int
	switch p.ItemType {
	case models.ItemTypeTask:
		node := s.tree.findTask(p.ItemID)
		if node == nil {
			return
		}
		completed, content, order = &node.Completed, &node.Content, &node.Order
	case models.ItemTypeSubTask:
		_, node := s.tree.findSubTask(p.ItemID)
		if node == nil {
			return
		}
		completed, content, order = &node.Completed, &node.Content, &node.Order
	default:
		return
	}

	// Merge only the named fields; concurrent events touching different
	// fields of the same item must not clobber each other.
	if p.Completed != nil {
		*completed = *p.Completed
	}
	if p.Content != nil {
		*content = *p.Content
	}
	if p.Order != nil {
		*order = *p.Order
		s.tree.sortByOrder()
	}
}

func (s *Session) applyItemDeleted(raw json.RawMessage) {
	var p realtime.ItemDeleted
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("undecodable item-deleted payload", zap.Error(err))
		return
	}

	switch p.ItemType {
	case models.ItemTypeTask:
		s.tree.removeTask(p.ItemID)
	case models.ItemTypeSubTask:
		s.tree.removeSubTask(p.ItemID)
	}
}

func (s *Session) applyCommentAdded(raw json.RawMessage) {
	var p struct {
		ItemType string `json:"itemType"`
		ItemID   string `json:"itemId"`
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn("undecodable comment-added payload", zap.Error(err))
		return
	}

	switch p.ItemType {
	case models.ItemTypeTask:
		if node := s.tree.findTask(p.ItemID); node != nil {
			node.Comments++
		}
	case models.ItemTypeSubTask:
		if _, node := s.tree.findSubTask(p.ItemID); node != nil {
			node.Comments++
		}
	}
}
