package logics

import (
	"context"

	"gorm.io/gorm"

	"listloop-server/internal/models"
	"listloop-server/pkg/errors"
)

// AccessService implements the uniform authorization policy: a caller may
// act on anything owned by a list when they are the list's owner or an
// ACCEPTED collaborator. List deletion stays owner-only.
type AccessService struct {
	db *gorm.DB
}

// NewAccessService creates a new AccessService.
func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

// HasListAccess reports whether the user is the owner or an accepted
// collaborator. A missing list yields false with no error.
func (s *AccessService) HasListAccess(ctx context.Context, listID, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.TodoList{}).
		Where("todo_lists.id = ?", listID).
		Where(
			s.db.Where("todo_lists.owner_id = ?", userID).
				Or("EXISTS (SELECT 1 FROM collaborators WHERE collaborators.todo_list_id = todo_lists.id AND collaborators.user_id = ? AND collaborators.status = ?)", userID, models.CollaboratorAccepted),
		).
		Count(&count).Error
	if err != nil {
		return false, errors.Internal("failed to check list access", err)
	}
	return count > 0, nil
}

// RequireListAccess returns NOT_FOUND when the list does not exist and
// UNAUTHORIZED when it exists but the user has no access.
func (s *AccessService) RequireListAccess(ctx context.Context, listID, userID string) error {
	var list models.TodoList
	err := s.db.WithContext(ctx).Select("id", "owner_id").First(&list, "id = ?", listID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("list not found")
		}
		return errors.Internal("failed to load list", err)
	}

	if list.OwnerID == userID {
		return nil
	}

	var count int64
	err = s.db.WithContext(ctx).
		Model(&models.Collaborator{}).
		Where("todo_list_id = ? AND user_id = ? AND status = ?", listID, userID, models.CollaboratorAccepted).
		Count(&count).Error
	if err != nil {
		return errors.Internal("failed to check collaborator access", err)
	}
	if count == 0 {
		return errors.Forbidden("you do not have access to this list")
	}
	return nil
}

// RequireListOwner returns NOT_FOUND when the list does not exist and
// UNAUTHORIZED when the user is not its owner.
func (s *AccessService) RequireListOwner(ctx context.Context, listID, userID string) error {
	var list models.TodoList
	err := s.db.WithContext(ctx).Select("id", "owner_id").First(&list, "id = ?", listID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.NotFound("list not found")
		}
		return errors.Internal("failed to load list", err)
	}
	if list.OwnerID != userID {
		return errors.Forbidden("only the list owner may do this")
	}
	return nil
}
