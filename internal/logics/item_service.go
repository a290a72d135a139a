package logics

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
	"listloop-server/internal/utils"
	"listloop-server/pkg/errors"
)

// ItemService mutates tasks and subtasks. Every successful mutation
// broadcasts exactly one event on the list channel, excluding the
// originating connection.
type ItemService struct {
	db            *gorm.DB
	accessService *AccessService
	listService   *ListService
	broker        realtime.Broker
	logger        *zap.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(db *gorm.DB, accessService *AccessService, listService *ListService, broker realtime.Broker, logger *zap.Logger) *ItemService {
	return &ItemService{
		db:            db,
		accessService: accessService,
		listService:   listService,
		broker:        broker,
		logger:        logger,
	}
}

// AppendInput describes an item to append to a list.
type AppendInput struct {
	ItemType string `json:"itemType" validate:"required,oneof=task subtask"`
	Content  string `json:"content" validate:"required"`
	ParentID string `json:"parentId,omitempty"`
}

// Append creates a task or subtask at the end of its sibling scope.
// The new item's order is one past the current maximum, or 0 in an
// empty scope.
func (s *ItemService) Append(ctx context.Context, listID, userID, socketID string, input AppendInput) (interface{}, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, errors.Invalid("content must not be empty")
	}
	if !models.ValidItemType(input.ItemType) {
		return nil, errors.Invalid("itemType must be task or subtask")
	}
	if input.ItemType == models.ItemTypeSubTask && input.ParentID == "" {
		return nil, errors.Invalid("parentId is required for subtasks")
	}

	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	var created interface{}
	var parentID string

	switch input.ItemType {
	case models.ItemTypeTask:
		var maxOrder *int
		err := s.db.WithContext(ctx).
			Model(&models.Task{}).
			Where("todo_list_id = ?", listID).
			Select("MAX(item_order)").
			Scan(&maxOrder).Error
		if err != nil {
			return nil, errors.Internal("failed to compute task order", err)
		}

		task := models.Task{
			ID:         utils.GenerateUniqueID(utils.PrefixTask),
			TodoListID: listID,
			Content:    content,
			Order:      nextOrder(maxOrder),
		}
		if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
			return nil, errors.Internal("failed to create task", err)
		}
		created = task

	case models.ItemTypeSubTask:
		var parent models.Task
		err := s.db.WithContext(ctx).
			First(&parent, "id = ? AND todo_list_id = ?", input.ParentID, listID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.NotFound("parent task not found in this list")
			}
			return nil, errors.Internal("failed to load parent task", err)
		}

		var maxOrder *int
		err = s.db.WithContext(ctx).
			Model(&models.SubTask{}).
			Where("task_id = ?", parent.ID).
			Select("MAX(item_order)").
			Scan(&maxOrder).Error
		if err != nil {
			return nil, errors.Internal("failed to compute subtask order", err)
		}

		subTask := models.SubTask{
			ID:      utils.GenerateUniqueID(utils.PrefixSubTask),
			TaskID:  parent.ID,
			Content: content,
			Order:   nextOrder(maxOrder),
		}
		if err := s.db.WithContext(ctx).Create(&subTask).Error; err != nil {
			return nil, errors.Internal("failed to create subtask", err)
		}
		created = subTask
		parentID = parent.ID
	}

	if err := s.listService.TouchList(ctx, listID); err != nil {
		s.logger.Warn("failed to touch list", zap.String("list_id", listID), zap.Error(err))
	}

	s.publish(ctx, listID, socketID, realtime.EventItemAdded, realtime.ItemAdded{
		Item:     created,
		ItemType: input.ItemType,
		ParentID: parentID,
	})
	return created, nil
}

// Patch applies a field-scoped update to an item. Only fields named in
// the patch are written and only those fields appear in the broadcast.
func (s *ItemService) Patch(ctx context.Context, listID, userID, socketID, itemType, itemID string, patch models.ItemPatch) (interface{}, error) {
	if !models.ValidItemType(itemType) {
		return nil, errors.Invalid("itemType must be task or subtask")
	}
	if patch.Empty() {
		return nil, errors.Invalid("patch must name at least one field")
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return nil, errors.Invalid("content must not be empty")
	}

	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Completed != nil {
		updates["completed"] = *patch.Completed
	}
	if patch.Content != nil {
		updates["content"] = strings.TrimSpace(*patch.Content)
	}
	if patch.Order != nil {
		updates["item_order"] = *patch.Order
	}

	var updated interface{}
	switch itemType {
	case models.ItemTypeTask:
		res := s.db.WithContext(ctx).
			Model(&models.Task{}).
			Where("id = ? AND todo_list_id = ?", itemID, listID).
			Updates(updates)
		if res.Error != nil {
			return nil, errors.Internal("failed to update task", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, errors.NotFound("task not found in this list")
		}
		var task models.Task
		if err := s.db.WithContext(ctx).First(&task, "id = ?", itemID).Error; err != nil {
			return nil, errors.Internal("failed to reload task", err)
		}
		updated = task

	case models.ItemTypeSubTask:
		subTask, err := s.findSubTaskInList(ctx, listID, itemID)
		if err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(subTask).Updates(updates).Error; err != nil {
			return nil, errors.Internal("failed to update subtask", err)
		}
		updated = *subTask
	}

	if err := s.listService.TouchList(ctx, listID); err != nil {
		s.logger.Warn("failed to touch list", zap.String("list_id", listID), zap.Error(err))
	}

	// Order moves invalidate sibling positions beyond the one item, so
	// they broadcast a whole-list reorder instead of a field patch.
	if patch.Order != nil {
		s.publish(ctx, listID, socketID, realtime.EventListReordered, struct{}{})
	} else {
		s.publish(ctx, listID, socketID, realtime.EventItemUpdated, realtime.ItemUpdated{
			ItemID:    itemID,
			ItemType:  itemType,
			Completed: patch.Completed,
			Content:   patch.Content,
			Order:     patch.Order,
		})
	}
	return updated, nil
}

// Delete removes an item. Subtask deletes carry the parent task ID in
// the broadcast so views can prune the right branch.
func (s *ItemService) Delete(ctx context.Context, listID, userID, socketID, itemType, itemID string) error {
	if !models.ValidItemType(itemType) {
		return errors.Invalid("itemType must be task or subtask")
	}

	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return err
	}

	var parentID string
	switch itemType {
	case models.ItemTypeTask:
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var task models.Task
			if err := tx.First(&task, "id = ? AND todo_list_id = ?", itemID, listID).Error; err != nil {
				return err
			}
			var subTaskIDs []string
			if err := tx.Model(&models.SubTask{}).Where("task_id = ?", task.ID).Pluck("id", &subTaskIDs).Error; err != nil {
				return err
			}
			if len(subTaskIDs) > 0 {
				if err := tx.Where("sub_task_id IN ?", subTaskIDs).Delete(&models.Comment{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id = ?", task.ID).Delete(&models.SubTask{}).Error; err != nil {
				return err
			}
			return tx.Delete(&task).Error
		})
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.NotFound("task not found in this list")
			}
			return errors.Internal("failed to delete task", err)
		}

	case models.ItemTypeSubTask:
		subTask, err := s.findSubTaskInList(ctx, listID, itemID)
		if err != nil {
			return err
		}
		parentID = subTask.TaskID
		err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("sub_task_id = ?", subTask.ID).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			return tx.Delete(subTask).Error
		})
		if err != nil {
			return errors.Internal("failed to delete subtask", err)
		}
	}

	if err := s.listService.TouchList(ctx, listID); err != nil {
		s.logger.Warn("failed to touch list", zap.String("list_id", listID), zap.Error(err))
	}

	s.publish(ctx, listID, socketID, realtime.EventItemDeleted, realtime.ItemDeleted{
		ItemID:   itemID,
		ItemType: itemType,
		ParentID: parentID,
	})
	return nil
}

// findSubTaskInList resolves a subtask only when its parent task
// belongs to the given list. Anything else is NOT_FOUND.
func (s *ItemService) findSubTaskInList(ctx context.Context, listID, subTaskID string) (*models.SubTask, error) {
	var subTask models.SubTask
	err := s.db.WithContext(ctx).
		Joins("JOIN tasks ON tasks.id = sub_tasks.task_id").
		Where("sub_tasks.id = ? AND tasks.todo_list_id = ?", subTaskID, listID).
		First(&subTask).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("subtask not found in this list")
		}
		return nil, errors.Internal("failed to load subtask", err)
	}
	return &subTask, nil
}

// publish broadcasts on the list channel. Delivery failures never fail
// the mutation; they are logged and dropped.
func (s *ItemService) publish(ctx context.Context, listID, socketID, event string, payload interface{}) {
	err := s.broker.Publish(ctx, realtime.ListChannel(listID), event, payload,
		realtime.WithExcludeSocket(socketID))
	if err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event", event),
			zap.String("list_id", listID),
			zap.Error(err))
	}
}

func nextOrder(maxOrder *int) int {
	if maxOrder == nil {
		return 0
	}
	return *maxOrder + 1
}
