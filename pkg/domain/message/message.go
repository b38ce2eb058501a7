// Package message holds chat messages and system notifications, which share
// one table; notifications are messages sent from SystemSender.
package message

import "time"

// SystemSender is the reserved username notifications are sent from.
const SystemSender = "system"

// Message is one message between two users, or from the system to a user.
type Message struct {
	ID        int64
	From      string
	To        string
	Content   string
	CreatedAt time.Time
}

// Notification builds a system message addressed to username.
func Notification(username, content string) *Message {
	return &Message{
		From:    SystemSender,
		To:      username,
		Content: content,
	}
}
