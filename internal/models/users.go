package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User rows are provisioned by the identity provider; this service only
// reads them for display and access checks.
type User struct {
	ID        string         `gorm:"type:char(13);primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(100);not null;unique" json:"username"`
	Name      *string        `gorm:"type:varchar(250)" json:"name"`
	Email     string         `gorm:"size:250;not null;unique" json:"email,omitempty"`
	AvatarURL string         `gorm:"type:varchar(250)" json:"avatar_url,omitempty"`
	// Preferences is a free-form settings blob owned by the client.
	Preferences datatypes.JSON `gorm:"type:jsonb" json:"preferences,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is the subset of User exposed in list trees, comments, and
// search results.
type PublicUser struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	Name     *string `json:"name"`
}

// Public strips the fields other users should not see.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
	}
}
