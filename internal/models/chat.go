package models

import "time"

// Chat message directions
const (
	ChatDirectionInbound  = "inbound"
	ChatDirectionOutbound = "outbound"
)

// Chat message kinds
const (
	ChatKindText   = "text"
	ChatKindMedia  = "media"
	ChatKindStatus = "status"
)

// ChatMessage represents one row in the WhatsApp chat log
type ChatMessage struct {
	ID         int64     `json:"id"`
	ExternalID string    `json:"external_id"` // WhatsApp message id (wamid) or generated uuid
	Phone      string    `json:"phone"`       // normalized counterpart number
	Direction  string    `json:"direction"`
	Kind       string    `json:"kind"`
	Body       string    `json:"body"`
	Status     string    `json:"status"` // sent, delivered, read, failed
	SentAt     time.Time `json:"sent_at"`
	CreatedAt  time.Time `json:"created_at"`
}
