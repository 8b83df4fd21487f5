package models

import (
	"time"
)

// MessageGroup is a chat between two or more users
type MessageGroup struct {
	ID        string    `gorm:"primaryKey;size:16" json:"id"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for MessageGroup model
func (MessageGroup) TableName() string {
	return "message_groups"
}

// MessageGroupMember records membership of a user in a message group
type MessageGroupMember struct {
	GroupID   string    `gorm:"primaryKey;size:16" json:"group_id"`
	UserID    string    `gorm:"primaryKey;size:16" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for MessageGroupMember model
func (MessageGroupMember) TableName() string {
	return "message_group_members"
}

// Message belongs to exactly one group and one sender; the timestamp is
// always assigned by the server.
type Message struct {
	ID       string    `gorm:"primaryKey;size:36" json:"id"`
	GroupID  string    `gorm:"size:16;not null;index" json:"group_id"`
	SenderID string    `gorm:"size:16;not null" json:"sender_id"`
	Text     string    `gorm:"size:4000;not null" json:"text"`
	SentAt   time.Time `gorm:"not null;index" json:"sent_at"`
}

// TableName specifies the table name for Message model
func (Message) TableName() string {
	return "messages"
}
