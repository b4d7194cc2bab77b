package postgres

import (
	"context"
	"fmt"

	"github.com/dkadlec/face-lounge/internal/store"
	"github.com/google/uuid"
)

// MessageRepository provides PostgreSQL-backed chat message storage.
type MessageRepository struct {
	pool *Pool
}

// NewMessageRepository creates a new PostgreSQL message repository.
func NewMessageRepository(pool *Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// CreateMessage stores a new message and fills in its ID.
func (r *MessageRepository) CreateMessage(ctx context.Context, message *store.Message) error {
	message.ID = uuid.NewString()

	query := `
		INSERT INTO messages (id, sender_name, message, ts)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.pool.Exec(ctx, query,
		message.ID,
		message.SenderName,
		message.Message,
		message.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// ListMessages returns up to limit messages ordered newest-first.
func (r *MessageRepository) ListMessages(ctx context.Context, limit int) ([]store.Message, error) {
	query := `
		SELECT id, sender_name, message, ts
		FROM messages
		ORDER BY ts DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []store.Message
	for rows.Next() {
		var m store.Message
		if err := rows.Scan(&m.ID, &m.SenderName, &m.Message, &m.Timestamp); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return messages, nil
}
