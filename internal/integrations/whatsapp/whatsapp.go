package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/leadbank/crm-service/internal/config"
	"github.com/sirupsen/logrus"
)

// Client handles outbound calls to the WhatsApp Cloud API
type Client struct {
	apiURL  string
	token   string
	phoneID string
	client  *http.Client
	log     *logrus.Logger
}

// NewClient initializes a new WhatsApp client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		apiURL:  cfg.WhatsAppAPIURL,
		token:   cfg.WhatsAppToken,
		phoneID: cfg.WhatsAppPhoneID,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type textMessage struct {
	MessagingProduct string `json:"messaging_product"`
	To               string `json:"to"`
	Type             string `json:"type"`
	Text             struct {
		Body string `json:"body"`
	} `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// SendText sends a plain text message to a normalized number and returns the
// WhatsApp message id (wamid) assigned by the API
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	msg := textMessage{MessagingProduct: "whatsapp", To: to, Type: "text"}
	msg.Text.Body = body

	payload, err := json.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	c.log.Debugf("WhatsApp send response: %s", string(raw))

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var decoded sendResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if len(decoded.Messages) == 0 {
		return "", fmt.Errorf("no message id in response")
	}
	return decoded.Messages[0].ID, nil
}
