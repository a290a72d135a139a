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

// CommentService attaches comments to tasks and subtasks. A comment
// references exactly one item, never both.
type CommentService struct {
	db            *gorm.DB
	accessService *AccessService
	broker        realtime.Broker
	logger        *zap.Logger
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *gorm.DB, accessService *AccessService, broker realtime.Broker, logger *zap.Logger) *CommentService {
	return &CommentService{
		db:            db,
		accessService: accessService,
		broker:        broker,
		logger:        logger,
	}
}

// CreateComment adds a comment to an item in the given list and
// broadcasts it on the list channel.
func (s *CommentService) CreateComment(ctx context.Context, listID, userID, socketID, itemType, itemID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Invalid("content must not be empty")
	}
	if !models.ValidItemType(itemType) {
		return nil, errors.Invalid("itemType must be task or subtask")
	}

	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}
	if err := s.requireItemInList(ctx, listID, itemType, itemID); err != nil {
		return nil, err
	}

	comment := models.Comment{
		ID:       utils.GenerateUniqueID(utils.PrefixComment),
		Content:  content,
		AuthorID: userID,
	}
	if itemType == models.ItemTypeTask {
		comment.TaskID = &itemID
	} else {
		comment.SubTaskID = &itemID
	}

	if err := s.db.WithContext(ctx).Create(&comment).Error; err != nil {
		return nil, errors.Internal("failed to create comment", err)
	}
	if err := s.db.WithContext(ctx).Preload("Author").First(&comment, "id = ?", comment.ID).Error; err != nil {
		return nil, errors.Internal("failed to reload comment", err)
	}

	err := s.broker.Publish(ctx, realtime.ListChannel(listID), realtime.EventCommentAdded,
		realtime.CommentAdded{Comment: comment, ItemType: itemType, ItemID: itemID},
		realtime.WithExcludeSocket(socketID))
	if err != nil {
		s.logger.Error("failed to publish comment event",
			zap.String("list_id", listID), zap.Error(err))
	}
	return &comment, nil
}

// ListComments returns an item's comments oldest first.
func (s *CommentService) ListComments(ctx context.Context, listID, userID, itemType, itemID string) ([]models.Comment, error) {
	if !models.ValidItemType(itemType) {
		return nil, errors.Invalid("itemType must be task or subtask")
	}
	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}
	if err := s.requireItemInList(ctx, listID, itemType, itemID); err != nil {
		return nil, err
	}

	column := "task_id"
	if itemType == models.ItemTypeSubTask {
		column = "sub_task_id"
	}

	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where(column+" = ?", itemID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Internal("failed to load comments", err)
	}
	return comments, nil
}

// requireItemInList checks the item exists under the list, walking
// through the parent task for subtasks.
func (s *CommentService) requireItemInList(ctx context.Context, listID, itemType, itemID string) error {
	var count int64
	var err error
	if itemType == models.ItemTypeTask {
		err = s.db.WithContext(ctx).
			Model(&models.Task{}).
			Where("id = ? AND todo_list_id = ?", itemID, listID).
			Count(&count).Error
	} else {
		err = s.db.WithContext(ctx).
			Model(&models.SubTask{}).
			Joins("JOIN tasks ON tasks.id = sub_tasks.task_id").
			Where("sub_tasks.id = ? AND tasks.todo_list_id = ?", itemID, listID).
			Count(&count).Error
	}
	if err != nil {
		return errors.Internal("failed to resolve item", err)
	}
	if count == 0 {
		return errors.NotFound("item not found in this list")
	}
	return nil
}
