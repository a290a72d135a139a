package models

import (
	"time"

	"gorm.io/gorm"
)

// Collaborator status values. A PENDING row is an unconsumed invitation;
// ACCEPTED grants read/write access equal to the owner's, minus deletion.
const (
	CollaboratorPending  = "PENDING"
	CollaboratorAccepted = "ACCEPTED"
)

// TodoList is the root aggregate: all access checks on tasks, subtasks, and
// comments resolve to access on the owning list.
type TodoList struct {
	ID          string `gorm:"type:char(13);primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(250);not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OwnerID     string `gorm:"type:char(13);not null;index" json:"ownerId"`

	Owner         *User          `gorm:"foreignKey:OwnerID;references:ID" json:"owner,omitempty"`
	Collaborators []Collaborator `gorm:"foreignKey:TodoListID;references:ID;constraint:OnDelete:CASCADE" json:"collaborators,omitempty"`
	Tasks         []Task         `gorm:"foreignKey:TodoListID;references:ID;constraint:OnDelete:CASCADE" json:"tasks,omitempty"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func (TodoList) TableName() string {
	return "todo_lists"
}

// Collaborator links a list to a user. At most one row per (list, user) pair.
type Collaborator struct {
	ID         string `gorm:"type:char(13);primaryKey" json:"id"`
	TodoListID string `gorm:"type:char(13);not null;uniqueIndex:idx_list_user" json:"todoListId"`
	UserID     string `gorm:"type:char(13);not null;uniqueIndex:idx_list_user" json:"userId"`
	Status     string `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	TodoList *TodoList `gorm:"foreignKey:TodoListID;references:ID" json:"todoList,omitempty"`
	User     *User     `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Collaborator) TableName() string {
	return "collaborators"
}
