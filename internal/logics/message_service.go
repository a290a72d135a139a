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

// MessageService handles direct messages scoped to a list. Sender and
// receiver must both have access to the list.
type MessageService struct {
	db            *gorm.DB
	accessService *AccessService
	broker        realtime.Broker
	logger        *zap.Logger
}

// NewMessageService creates a new MessageService.
func NewMessageService(db *gorm.DB, accessService *AccessService, broker realtime.Broker, logger *zap.Logger) *MessageService {
	return &MessageService{
		db:            db,
		accessService: accessService,
		broker:        broker,
		logger:        logger,
	}
}

// Send stores a direct message and notifies the receiver on their user
// channel.
func (s *MessageService) Send(ctx context.Context, listID, senderID, receiverID, content string) (*models.DirectMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.Invalid("content must not be empty")
	}
	if receiverID == senderID {
		return nil, errors.Invalid("you cannot message yourself")
	}

	if err := s.accessService.RequireListAccess(ctx, listID, senderID); err != nil {
		return nil, err
	}
	receiverOK, err := s.accessService.HasListAccess(ctx, listID, receiverID)
	if err != nil {
		return nil, err
	}
	if !receiverOK {
		return nil, errors.Invalid("receiver has no access to this list")
	}

	message := models.DirectMessage{
		ID:         utils.GenerateUniqueID(utils.PrefixMessage),
		TodoListID: listID,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.db.WithContext(ctx).Create(&message).Error; err != nil {
		return nil, errors.Internal("failed to create message", err)
	}
	if err := s.db.WithContext(ctx).Preload("Sender").First(&message, "id = ?", message.ID).Error; err != nil {
		return nil, errors.Internal("failed to reload message", err)
	}

	err = s.broker.Publish(ctx, realtime.UserChannel(receiverID), realtime.EventNewMessage, message)
	if err != nil {
		s.logger.Error("failed to publish message event",
			zap.String("receiver_id", receiverID), zap.Error(err))
	}
	return &message, nil
}

// Thread returns the conversation between the caller and another user
// within one list, oldest first.
func (s *MessageService) Thread(ctx context.Context, listID, userID, otherID string) ([]models.DirectMessage, error) {
	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	var messages []models.DirectMessage
	err := s.db.WithContext(ctx).
		Preload("Sender").
		Where("todo_list_id = ?", listID).
		Where(
			s.db.Where("sender_id = ? AND receiver_id = ?", userID, otherID).
				Or("sender_id = ? AND receiver_id = ?", otherID, userID),
		).
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, errors.Internal("failed to load messages", err)
	}
	return messages, nil
}
