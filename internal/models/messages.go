package models

import (
	"time"
)

// DirectMessage is a message between two users in the context of a list.
// Both sender and receiver must have access to the referenced list.
type DirectMessage struct {
	ID         string `gorm:"type:char(13);primaryKey" json:"id"`
	TodoListID string `gorm:"type:char(13);not null;index" json:"listId"`
	SenderID   string `gorm:"type:char(13);not null;index" json:"senderId"`
	ReceiverID string `gorm:"type:char(13);not null;index" json:"receiverId"`
	Content    string `gorm:"type:text;not null" json:"content"`

	Sender *User `gorm:"foreignKey:SenderID;references:ID" json:"sender,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (DirectMessage) TableName() string {
	return "direct_messages"
}
