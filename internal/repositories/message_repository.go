package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"collablearn/internal/models"
)

// MessageRepository defines interactions for chat messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, chatID string, senderID int, content string) (models.Message, error)
	GetChatMessages(ctx context.Context, chatID string) ([]models.Message, error)
	ListChatsForUser(ctx context.Context, userID int) ([]models.ChatSummary, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage stores a message in a chat room.
func (r *MessageRepo) CreateMessage(ctx context.Context, chatID string, senderID int, content string) (models.Message, error) {
	var msg models.Message
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO messages (chat_id, sender_id, content) VALUES ($1, $2, $3)
         RETURNING id, chat_id, sender_id, content, created_at`, chatID, senderID, content).
		StructScan(&msg)
	return msg, err
}

// GetChatMessages returns the messages of a chat ordered by creation time.
func (r *MessageRepo) GetChatMessages(ctx context.Context, chatID string) ([]models.Message, error) {
	var msgs []models.Message
	err := r.db.SelectContext(ctx, &msgs,
		`SELECT id, chat_id, sender_id, content, created_at FROM messages
         WHERE chat_id=$1 ORDER BY created_at ASC`, chatID)
	return msgs, err
}

// ListChatsForUser returns one summary per conversation the user appears in,
// most recent first. The partner id is recovered from the chat id.
func (r *MessageRepo) ListChatsForUser(ctx context.Context, userID int) ([]models.ChatSummary, error) {
	query := `SELECT chat_id, sender_id, content, created_at FROM (
            SELECT DISTINCT ON (chat_id) chat_id, sender_id, content, created_at
            FROM messages
            WHERE chat_id LIKE $1::text || '\_%' OR chat_id LIKE '%\_' || $1::text
            ORDER BY chat_id, created_at DESC
        ) latest ORDER BY created_at DESC`

	rows, err := r.db.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []models.ChatSummary
	for rows.Next() {
		var msg models.Message
		if err := rows.StructScan(&msg); err != nil {
			return nil, err
		}
		result = append(result, models.ChatSummary{
			ChatID:        msg.ChatID,
			PartnerID:     models.ChatPartner(msg.ChatID, userID),
			LastMessage:   msg.Content,
			LastMessageAt: msg.CreatedAt,
		})
	}
	return result, rows.Err()
}
