//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

// Message is a direct message between two portal users.
type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	CreatedAt  time.Time `json:"created_at"`
}

// Conversation summarizes the message history with one other user.
type Conversation struct {
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name,omitempty"`
	LastMessage *Message  `json:"last_message,omitempty"`
	UnreadCount int       `json:"unread_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SendMessageRequest represents parameters to send a Message.
type SendMessageRequest struct {
	ReceiverID string `json:"receiver_id"`
	Content    string `json:"content"`
}

// Validate checks the request for obvious problems before it leaves the process.
func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.ReceiverID) == "" {
		return errors.New("message receiver is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("message content is required")
	}
	return nil
}
