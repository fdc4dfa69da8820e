package repository

import (
	"database/sql"
	"fmt"

	"github.com/leadbank/crm-service/internal/models"
)

// CreateChatMessage appends one row to the chat log. Duplicate external ids
// (webhook redelivery) are ignored.
func (r *Repository) CreateChatMessage(msg *models.ChatMessage) error {
	query := `
		INSERT INTO crm.chat_messages (external_id, phone, direction, kind, body, status, sent_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
		ON CONFLICT (external_id) DO NOTHING
		RETURNING id, created_at`
	err := r.db.QueryRow(query, msg.ExternalID, msg.Phone, msg.Direction, msg.Kind, msg.Body, msg.Status, msg.SentAt).
		Scan(&msg.ID, &msg.CreatedAt)
	if err == sql.ErrNoRows {
		// Conflict path: the row already existed, nothing to do
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create chat message: %w", err)
	}
	return nil
}

// UpdateChatMessageStatus records a delivery-status update for an outbound message
func (r *Repository) UpdateChatMessageStatus(externalID, status string) error {
	_, err := r.db.Exec(`
		UPDATE crm.chat_messages
		SET status = $2
		WHERE external_id = $1`, externalID, status)
	if err != nil {
		return fmt.Errorf("failed to update chat message status: %w", err)
	}
	return nil
}

// ListChatMessages returns the conversation with one phone number, oldest first
func (r *Repository) ListChatMessages(phone string) ([]models.ChatMessage, error) {
	query := `
		SELECT id, external_id, phone, direction, kind, body, status, sent_at, created_at
		FROM crm.chat_messages
		WHERE phone = $1
		ORDER BY sent_at ASC`
	rows, err := r.db.Query(query, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	defer rows.Close()

	msgs := []models.ChatMessage{}
	for rows.Next() {
		var msg models.ChatMessage
		if err := rows.Scan(&msg.ID, &msg.ExternalID, &msg.Phone, &msg.Direction, &msg.Kind,
			&msg.Body, &msg.Status, &msg.SentAt, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan chat message: %w", err)
		}
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read chat messages: %w", err)
	}
	return msgs, nil
}
