package models

import (
	"time"
)

// Comment attaches to exactly one of a task or a subtask: one of TaskID and
// SubTaskID is set, never both, never neither.
type Comment struct {
	ID        string  `gorm:"type:char(13);primaryKey" json:"id"`
	Content   string  `gorm:"type:text;not null" json:"content"`
	AuthorID  string  `gorm:"type:char(13);not null" json:"authorId"`
	TaskID    *string `gorm:"type:char(13);index" json:"taskId,omitempty"`
	SubTaskID *string `gorm:"type:char(13);index" json:"subTaskId,omitempty"`

	Author *User `gorm:"foreignKey:AuthorID;references:ID" json:"author,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Comment) TableName() string {
	return "comments"
}
