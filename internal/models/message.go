package models

import "time"

// Message represents a persisted chat message. Messages are immutable once
// created; the application never edits or deletes them.
type Message struct {
	ID        int       `db:"id" json:"id"`
	ChatID    string    `db:"chat_id" json:"chat_id"`
	SenderID  int       `db:"sender_id" json:"sender_id"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Websocket event types exchanged with clients.
const (
	EventUserOnline       = "user_online"
	EventOnlineUsersList  = "online_users_list"
	EventUserStatusChange = "user_status_change"
	EventJoinRoom         = "joinRoom"
	EventLeaveRoom        = "leaveRoom"
	EventChatMessage      = "chat message"
	EventTyping           = "typing"
	EventStoppedTyping    = "stopped typing"
)

// ClientEvent is the envelope clients send over the websocket.
type ClientEvent struct {
	Type    string `json:"type"`
	UserID  int    `json:"user_id,omitempty"`
	ChatID  string `json:"chat_id,omitempty"`
	Content string `json:"content,omitempty"`
}

// ServerEvent is the envelope broadcast to clients.
type ServerEvent struct {
	Type        string   `json:"type"`
	Message     *Message `json:"message,omitempty"`
	ChatID      string   `json:"chat_id,omitempty"`
	UserID      int      `json:"user_id,omitempty"`
	IsOnline    *bool    `json:"is_online,omitempty"`
	OnlineUsers []int    `json:"online_users,omitempty"`
}
