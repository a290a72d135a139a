package logics

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"listloop-server/internal/models"
	"listloop-server/internal/utils"
	"listloop-server/pkg/errors"
)

const defaultListTitle = "Untitled List"

// ListService manages todo lists and their full item trees.
type ListService struct {
	db            *gorm.DB
	accessService *AccessService
	cursorManager *utils.CursorManager
	logger        *zap.Logger
}

// NewListService creates a new ListService.
func NewListService(db *gorm.DB, accessService *AccessService, cursorManager *utils.CursorManager, logger *zap.Logger) *ListService {
	return &ListService{
		db:            db,
		accessService: accessService,
		cursorManager: cursorManager,
		logger:        logger,
	}
}

// CreateList creates an empty list owned by the caller. An empty title
// falls back to the default.
func (s *ListService) CreateList(ctx context.Context, ownerID, title, description string) (*models.TodoList, error) {
	if title == "" {
		title = defaultListTitle
	}

	list := models.TodoList{
		ID:          utils.GenerateUniqueID(utils.PrefixList),
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	if err := s.db.WithContext(ctx).Create(&list).Error; err != nil {
		return nil, errors.Internal("failed to create list", err)
	}

	s.logger.Info("list created",
		zap.String("list_id", list.ID),
		zap.String("owner_id", ownerID))
	return &list, nil
}

// CreateGeneratedList persists a planner-produced list tree in one
// transaction. Orders follow the plan's task and subtask positions.
func (s *ListService) CreateGeneratedList(ctx context.Context, ownerID string, plan *GeneratedListInput) (*models.TodoList, error) {
	list := models.TodoList{
		ID:          utils.GenerateUniqueID(utils.PrefixList),
		Title:       plan.Title,
		Description: plan.Description,
		OwnerID:     ownerID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&list).Error; err != nil {
			return err
		}
		for i, t := range plan.Tasks {
			task := models.Task{
				ID:         utils.GenerateUniqueID(utils.PrefixTask),
				TodoListID: list.ID,
				Content:    t.Content,
				Order:      i,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
			for j, st := range t.SubTasks {
				subTask := models.SubTask{
					ID:      utils.GenerateUniqueID(utils.PrefixSubTask),
					TaskID:  task.ID,
					Content: st,
					Order:   j,
				}
				if err := tx.Create(&subTask).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Internal("failed to persist generated list", err)
	}

	return s.loadTree(ctx, list.ID)
}

// GeneratedListInput is a planner output ready for persistence.
type GeneratedListInput struct {
	Title       string
	Description string
	Tasks       []GeneratedTaskInput
}

// GeneratedTaskInput is one planned task with its subtask contents.
type GeneratedTaskInput struct {
	Content  string
	SubTasks []string
}

// GetList returns the full list tree. A missing list and a list the
// caller cannot see are indistinguishable to the caller.
func (s *ListService) GetList(ctx context.Context, listID, userID string) (*models.TodoList, error) {
	ok, err := s.accessService.HasListAccess(ctx, listID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NotFound("list not found")
	}
	return s.loadTree(ctx, listID)
}

func (s *ListService) loadTree(ctx context.Context, listID string) (*models.TodoList, error) {
	var list models.TodoList
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Collaborators", "status = ?", models.CollaboratorAccepted).
		Preload("Collaborators.User").
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.item_order ASC, tasks.created_at ASC")
		}).
		Preload("Tasks.SubTasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sub_tasks.item_order ASC, sub_tasks.created_at ASC")
		}).
		First(&list, "id = ?", listID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("list not found")
		}
		return nil, errors.Internal("failed to load list", err)
	}
	return &list, nil
}

// RecentListsResult is one page of the caller's lists.
type RecentListsResult struct {
	Lists []models.TodoList `json:"lists"`
	utils.PaginationResult
}

// GetRecentLists returns lists the caller owns or collaborates on,
// most recently updated first.
func (s *ListService) GetRecentLists(ctx context.Context, userID string, pagination utils.CursorPagination) (*RecentListsResult, error) {
	utils.GetPaginationDefaults(&pagination, 20, 100)

	query := s.db.WithContext(ctx).
		Model(&models.TodoList{}).
		Preload("Owner").
		Where(
			s.db.Where("todo_lists.owner_id = ?", userID).
				Or("EXISTS (SELECT 1 FROM collaborators WHERE collaborators.todo_list_id = todo_lists.id AND collaborators.user_id = ? AND collaborators.status = ?)", userID, models.CollaboratorAccepted),
		).
		Order("todo_lists.updated_at DESC, todo_lists.id DESC")

	if pagination.Cursor != "" {
		cursorData, err := s.cursorManager.DecodeCursor(pagination.Cursor)
		if err != nil {
			return nil, errors.Invalid("invalid cursor")
		}
		query = query.Where(
			"(todo_lists.updated_at < ?) OR (todo_lists.updated_at = ? AND todo_lists.id < ?)",
			cursorData.Timestamp, cursorData.Timestamp, cursorData.ID,
		)
	}

	var lists []models.TodoList
	if err := query.Limit(pagination.Limit + 1).Find(&lists).Error; err != nil {
		return nil, errors.Internal("failed to load recent lists", err)
	}

	result := &RecentListsResult{Lists: lists}
	if len(lists) > pagination.Limit {
		result.Lists = lists[:pagination.Limit]
		last := result.Lists[len(result.Lists)-1]
		result.NextCursor = s.cursorManager.EncodeCursor(last.UpdatedAt, last.ID)
		result.HasMore = true
	}
	return result, nil
}

// DeleteList removes a list and everything under it. Owner only.
func (s *ListService) DeleteList(ctx context.Context, listID, userID string) error {
	if err := s.accessService.RequireListOwner(ctx, listID, userID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taskIDs []string
		if err := tx.Model(&models.Task{}).Where("todo_list_id = ?", listID).Pluck("id", &taskIDs).Error; err != nil {
			return err
		}
		if len(taskIDs) > 0 {
			var subTaskIDs []string
			if err := tx.Model(&models.SubTask{}).Where("task_id IN ?", taskIDs).Pluck("id", &subTaskIDs).Error; err != nil {
				return err
			}
			if len(subTaskIDs) > 0 {
				if err := tx.Where("sub_task_id IN ?", subTaskIDs).Delete(&models.Comment{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.SubTask{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("todo_list_id = ?", listID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_list_id = ?", listID).Delete(&models.Collaborator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("todo_list_id = ?", listID).Delete(&models.DirectMessage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TodoList{}, "id = ?", listID).Error
	})
	if err != nil {
		return errors.Internal("failed to delete list", err)
	}

	s.logger.Info("list deleted",
		zap.String("list_id", listID),
		zap.String("owner_id", userID))
	return nil
}

// TouchList bumps the list's updated_at so it surfaces in recent lists
// after any child mutation.
func (s *ListService) TouchList(ctx context.Context, listID string) error {
	return s.db.WithContext(ctx).
		Model(&models.TodoList{}).
		Where("id = ?", listID).
		Update("updated_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
