package models

import (
	"time"
)

// Item type discriminators used in routes, payloads, and broadcast events.
// Anything else is a validation error, never a silent no-op.
const (
	ItemTypeTask    = "task"
	ItemTypeSubTask = "subtask"
)

// ValidItemType reports whether t is a known discriminator.
func ValidItemType(t string) bool {
	return t == ItemTypeTask || t == ItemTypeSubTask
}

// Task belongs to exactly one list. Order is a display sequence scoped to the
// list: gaps allowed, ties broken by insertion.
type Task struct {
	ID         string `gorm:"type:char(13);primaryKey" json:"id"`
	TodoListID string `gorm:"type:char(13);not null;index" json:"todoListId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Completed  bool   `gorm:"not null;default:false" json:"completed"`
	Order      int    `gorm:"column:item_order;not null;default:0" json:"order"`

	SubTasks []SubTask `gorm:"foreignKey:TaskID;references:ID;constraint:OnDelete:CASCADE" json:"subTasks"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Task) TableName() string {
	return "tasks"
}

// SubTask belongs to exactly one task; Order is scoped to the parent task.
type SubTask struct {
	ID        string `gorm:"type:char(13);primaryKey" json:"id"`
	TaskID    string `gorm:"type:char(13);not null;index" json:"taskId"`
	Content   string `gorm:"type:text;not null" json:"content"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
	Order     int    `gorm:"column:item_order;not null;default:0" json:"order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (SubTask) TableName() string {
	return "sub_tasks"
}

// ItemPatch is a partial update for a task or subtask. Nil fields are left
// untouched, and only the named fields travel in the resulting event.
type ItemPatch struct {
	Completed *bool   `json:"completed"`
	Content   *string `json:"content"`
	Order     *int    `json:"order"`
}

// Empty reports whether the patch names no fields.
func (p ItemPatch) Empty() bool {
	return p.Completed == nil && p.Content == nil && p.Order == nil
}
