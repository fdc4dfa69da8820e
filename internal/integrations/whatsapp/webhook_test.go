package whatsapp

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePayload = `{
	"object": "whatsapp_business_account",
	"entry": [{
		"id": "1001",
		"changes": [{
			"field": "messages",
			"value": {
				"messages": [{
					"id": "wamid.abc",
					"from": "6281234567890",
					"timestamp": "1752570000",
					"type": "text",
					"text": {"body": "hello"}
				}],
				"statuses": [{
					"id": "wamid.out1",
					"recipient_id": "6281234567890",
					"status": "delivered",
					"timestamp": "1752570060"
				}]
			}
		}]
	}]
}`

func TestWebhookPayload_Events(t *testing.T) {
	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(samplePayload), &payload))

	events := payload.Events()
	require.Len(t, events, 2)

	msg := events[0]
	assert.Equal(t, EventMessage, msg.Kind)
	assert.Equal(t, "wamid.abc", msg.MessageID)
	assert.Equal(t, "6281234567890", msg.Phone)
	assert.Equal(t, "hello", msg.Body)
	assert.Equal(t, time.Unix(1752570000, 0).UTC(), msg.Timestamp)

	st := events[1]
	assert.Equal(t, EventStatus, st.Kind)
	assert.Equal(t, "wamid.out1", st.MessageID)
	assert.Equal(t, "delivered", st.Status)
}

func TestWebhookPayload_EventsEmpty(t *testing.T) {
	var payload WebhookPayload
	require.NoError(t, json.Unmarshal([]byte(`{"object":"whatsapp_business_account","entry":[]}`), &payload))
	assert.Empty(t, payload.Events())
}
