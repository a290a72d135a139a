package logics

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"listloop-server/internal/models"
	"listloop-server/pkg/errors"
)

// UserService exposes user lookup for the invite flow.
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new UserService.
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// SearchUsers matches usernames and display names by prefix, excluding
// the caller. An empty query returns nothing.
func (s *UserService) SearchUsers(ctx context.Context, query, excludeUserID string) ([]models.PublicUser, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.PublicUser{}, nil
	}

	var users []models.User
	err := s.db.WithContext(ctx).
		Where("id <> ?", excludeUserID).
		Where(
			s.db.Where("LOWER(username) LIKE ?", strings.ToLower(query)+"%").
				Or("LOWER(name) LIKE ?", strings.ToLower(query)+"%"),
		).
		Order("username ASC").
		Limit(10).
		Find(&users).Error
	if err != nil {
		return nil, errors.Internal("failed to search users", err)
	}

	results := make([]models.PublicUser, 0, len(users))
	for i := range users {
		results = append(results, users[i].Public())
	}
	return results, nil
}
