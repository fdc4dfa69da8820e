package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leadbank/crm-service/internal/integrations/whatsapp"
	"github.com/leadbank/crm-service/internal/models"
	"github.com/leadbank/crm-service/internal/utils"
)

// SendChatMessage sends a WhatsApp text to a number and logs the outbound row
func (s *Service) SendChatMessage(ctx context.Context, phone, body string) (*models.ChatMessage, error) {
	if body == "" {
		return nil, fmt.Errorf("message body is required")
	}
	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return nil, fmt.Errorf("invalid phone: %w", err)
	}

	externalID, err := s.sender.SendText(ctx, normalized, body)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}
	if externalID == "" {
		externalID = uuid.NewString()
	}

	msg := &models.ChatMessage{
		ExternalID: externalID,
		Phone:      normalized,
		Direction:  models.ChatDirectionOutbound,
		Kind:       models.ChatKindText,
		Body:       body,
		Status:     "sent",
		SentAt:     time.Now().UTC(),
	}
	if err := s.repo.CreateChatMessage(msg); err != nil {
		return nil, err
	}

	s.log.Infof("WhatsApp message sent to %s", utils.MaskMobile(normalized))
	return msg, nil
}

// IngestWebhookEvents fans a decoded webhook payload out into the chat log.
// Inbound messages become rows, status updates patch the matching outbound
// row. Per-event failures are counted and reported once.
func (s *Service) IngestWebhookEvents(events []whatsapp.Event) error {
	var failed int
	for _, event := range events {
		if err := s.ingestEvent(event); err != nil {
			failed++
			s.log.Errorf("Webhook event %s dropped: %v", event.MessageID, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d webhook events failed", failed, len(events))
	}
	return nil
}

func (s *Service) ingestEvent(event whatsapp.Event) error {
	switch event.Kind {
	case whatsapp.EventStatus:
		return s.repo.UpdateChatMessageStatus(event.MessageID, event.Status)
	case whatsapp.EventMessage:
		phone, err := utils.NormalizePhone(event.Phone)
		if err != nil {
			return fmt.Errorf("invalid sender: %w", err)
		}
		kind := models.ChatKindText
		if event.Type != "text" {
			kind = models.ChatKindMedia
		}
		return s.repo.CreateChatMessage(&models.ChatMessage{
			ExternalID: event.MessageID,
			Phone:      phone,
			Direction:  models.ChatDirectionInbound,
			Kind:       kind,
			Body:       event.Body,
			Status:     "received",
			SentAt:     event.Timestamp,
		})
	default:
		return fmt.Errorf("unknown event kind %q", event.Kind)
	}
}

// GetChat returns the message history with one phone number
func (s *Service) GetChat(phone string) ([]models.ChatMessage, error) {
	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return nil, fmt.Errorf("invalid phone: %w", err)
	}
	return s.repo.ListChatMessages(normalized)
}
