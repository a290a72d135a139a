package logics

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"listloop-server/internal/models"
	"listloop-server/internal/realtime"
	"listloop-server/internal/utils"
	"listloop-server/pkg/errors"
)

// InvitationService manages collaborator invitations. Only the list
// owner invites; only the named invitee accepts or declines.
type InvitationService struct {
	db            *gorm.DB
	accessService *AccessService
	broker        realtime.Broker
	logger        *zap.Logger
}

// NewInvitationService creates a new InvitationService.
func NewInvitationService(db *gorm.DB, accessService *AccessService, broker realtime.Broker, logger *zap.Logger) *InvitationService {
	return &InvitationService{
		db:            db,
		accessService: accessService,
		broker:        broker,
		logger:        logger,
	}
}

// Invite creates a PENDING collaborator row and notifies the invitee on
// their user channel.
func (s *InvitationService) Invite(ctx context.Context, listID, ownerID, inviteeID string) (*models.Collaborator, error) {
	if inviteeID == ownerID {
		return nil, errors.Invalid("you cannot invite yourself")
	}
	if err := s.accessService.RequireListOwner(ctx, listID, ownerID); err != nil {
		return nil, err
	}

	var invitee models.User
	if err := s.db.WithContext(ctx).First(&invitee, "id = ?", inviteeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("user not found")
		}
		return nil, errors.Internal("failed to load user", err)
	}

	var existing int64
	err := s.db.WithContext(ctx).
		Model(&models.Collaborator{}).
		Where("todo_list_id = ? AND user_id = ?", listID, inviteeID).
		Count(&existing).Error
	if err != nil {
		return nil, errors.Internal("failed to check existing invitation", err)
	}
	if existing > 0 {
		return nil, errors.Conflict("user is already invited or collaborating")
	}

	collaborator := models.Collaborator{
		ID:         utils.GenerateUniqueID(utils.PrefixCollab),
		TodoListID: listID,
		UserID:     inviteeID,
		Status:     models.CollaboratorPending,
	}
	if err := s.db.WithContext(ctx).Create(&collaborator).Error; err != nil {
		return nil, errors.Internal("failed to create invitation", err)
	}
	if err := s.db.WithContext(ctx).
		Preload("TodoList").
		Preload("TodoList.Owner").
		Preload("User").
		First(&collaborator, "id = ?", collaborator.ID).Error; err != nil {
		return nil, errors.Internal("failed to reload invitation", err)
	}

	err = s.broker.Publish(ctx, realtime.UserChannel(inviteeID), realtime.EventInvitationNew, collaborator)
	if err != nil {
		s.logger.Error("failed to publish invitation event",
			zap.String("invitee_id", inviteeID), zap.Error(err))
	}

	s.logger.Info("collaborator invited",
		zap.String("list_id", listID),
		zap.String("invitee_id", inviteeID))
	return &collaborator, nil
}

// GetInvitations returns the caller's pending invitations, newest first.
func (s *InvitationService) GetInvitations(ctx context.Context, userID string) ([]models.Collaborator, error) {
	var invitations []models.Collaborator
	err := s.db.WithContext(ctx).
		Preload("TodoList").
		Preload("TodoList.Owner").
		Where("user_id = ? AND status = ?", userID, models.CollaboratorPending).
		Order("created_at DESC").
		Find(&invitations).Error
	if err != nil {
		return nil, errors.Internal("failed to load invitations", err)
	}
	return invitations, nil
}

// CountInvitations returns how many pending invitations the caller has.
func (s *InvitationService) CountInvitations(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Collaborator{}).
		Where("user_id = ? AND status = ?", userID, models.CollaboratorPending).
		Count(&count).Error
	if err != nil {
		return 0, errors.Internal("failed to count invitations", err)
	}
	return count, nil
}

// Accept flips the caller's pending invitation to ACCEPTED. Anyone but
// the named invitee sees NOT_FOUND.
func (s *InvitationService) Accept(ctx context.Context, invitationID, userID string) (*models.Collaborator, error) {
	var invitation models.Collaborator
	err := s.db.WithContext(ctx).
		First(&invitation, "id = ? AND user_id = ? AND status = ?",
			invitationID, userID, models.CollaboratorPending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("invitation not found")
		}
		return nil, errors.Internal("failed to load invitation", err)
	}

	err = s.db.WithContext(ctx).
		Model(&invitation).
		Update("status", models.CollaboratorAccepted).Error
	if err != nil {
		return nil, errors.Internal("failed to accept invitation", err)
	}

	s.logger.Info("invitation accepted",
		zap.String("invitation_id", invitationID),
		zap.String("user_id", userID))
	return &invitation, nil
}

// Decline deletes the caller's pending invitation. The row is gone
// afterwards, so declining twice returns NOT_FOUND.
func (s *InvitationService) Decline(ctx context.Context, invitationID, userID string) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?",
			invitationID, userID, models.CollaboratorPending).
		Delete(&models.Collaborator{})
	if res.Error != nil {
		return errors.Internal("failed to decline invitation", res.Error)
	}
	if res.RowsAffected == 0 {
		return errors.NotFound("invitation not found")
	}

	s.logger.Info("invitation declined",
		zap.String("invitation_id", invitationID),
		zap.String("user_id", userID))
	return nil
}

// GetCollaborators returns the list's participants excluding the
// caller: the owner plus every accepted collaborator.
func (s *InvitationService) GetCollaborators(ctx context.Context, listID, userID string) ([]models.PublicUser, error) {
	if err := s.accessService.RequireListAccess(ctx, listID, userID); err != nil {
		return nil, err
	}

	var list models.TodoList
	err := s.db.WithContext(ctx).
		Preload("Owner").
		Preload("Collaborators", "status = ?", models.CollaboratorAccepted).
		Preload("Collaborators.User").
		First(&list, "id = ?", listID).Error
	if err != nil {
		return nil, errors.Internal("failed to load collaborators", err)
	}

	participants := make([]models.PublicUser, 0, len(list.Collaborators)+1)
	if list.Owner != nil && list.Owner.ID != userID {
		participants = append(participants, list.Owner.Public())
	}
	for _, collab := range list.Collaborators {
		if collab.User == nil || collab.User.ID == userID {
			continue
		}
		participants = append(participants, collab.User.Public())
	}
	return participants, nil
}
