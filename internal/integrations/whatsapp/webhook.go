package whatsapp

import (
	"strconv"
	"time"
)

// Event kinds produced by webhook fan-out
const (
	EventMessage = "message"
	EventStatus  = "status"
)

// WebhookPayload mirrors the Cloud API webhook envelope. Only the fields the
// chat log needs are decoded.
type WebhookPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string `json:"field"`
			Value struct {
				Messages []struct {
					ID        string `json:"id"`
					From      string `json:"from"`
					Timestamp string `json:"timestamp"`
					Type      string `json:"type"`
					Text      struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
				Statuses []struct {
					ID          string `json:"id"`
					RecipientID string `json:"recipient_id"`
					Status      string `json:"status"`
					Timestamp   string `json:"timestamp"`
				} `json:"statuses"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// Event is one flattened inbound message or delivery-status update
type Event struct {
	Kind      string
	MessageID string
	Phone     string
	Type      string
	Body      string
	Status    string
	Timestamp time.Time
}

// Events flattens the nested webhook envelope into one event per inbound
// message and per status update, in payload order
func (p *WebhookPayload) Events() []Event {
	events := []Event{}
	for _, entry := range p.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				events = append(events, Event{
					Kind:      EventMessage,
					MessageID: msg.ID,
					Phone:     msg.From,
					Type:      msg.Type,
					Body:      msg.Text.Body,
					Timestamp: parseTimestamp(msg.Timestamp),
				})
			}
			for _, st := range change.Value.Statuses {
				events = append(events, Event{
					Kind:      EventStatus,
					MessageID: st.ID,
					Phone:     st.RecipientID,
					Status:    st.Status,
					Timestamp: parseTimestamp(st.Timestamp),
				})
			}
		}
	}
	return events
}

// parseTimestamp converts the Cloud API's unix-second string; bad values
// degrade to now rather than dropping the event
func parseTimestamp(raw string) time.Time {
	secs, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Now().UTC()
	}
	return time.Unix(secs, 0).UTC()
}
