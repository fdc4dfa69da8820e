package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/leadbank/crm-service/internal/config"
	"github.com/leadbank/crm-service/internal/integrations/whatsapp"
	"github.com/leadbank/crm-service/internal/utils"
)

type sendMessageRequest struct {
	Body string `json:"body"`
}

// VerifyWebhook handles the Cloud API's GET challenge handshake
func (h *Handler) VerifyWebhook(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("hub.mode") == "subscribe" && q.Get("hub.verify_token") == cfg.WhatsAppVerifyToken {
			w.Write([]byte(q.Get("hub.challenge")))
			return
		}
		h.respondError(w, http.StatusForbidden, "verification failed")
	}
}

// ReceiveWebhook handles POST webhook deliveries: signature check, then
// fan-out of every message and status update into the chat log. The Cloud
// API expects 200 even when individual events fail, otherwise it redelivers
// the whole batch forever.
func (h *Handler) ReceiveWebhook(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		if cfg.WhatsAppAppSecret != "" {
			signature := strings.TrimPrefix(r.Header.Get("X-Hub-Signature-256"), "sha256=")
			if !utils.VerifySignature(body, signature, cfg.WhatsAppAppSecret) {
				h.respondError(w, http.StatusUnauthorized, "invalid signature")
				return
			}
		}

		var payload whatsapp.WebhookPayload
		if err := json.Unmarshal(body, &payload); err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid payload")
			return
		}

		if err := h.svc.IngestWebhookEvents(payload.Events()); err != nil {
			h.log.Errorf("Webhook ingest incomplete: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}
}

// SendChatMessage handles POST /chats/{phone}/messages
func (h *Handler) SendChatMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := h.svc.SendChatMessage(r.Context(), mux.Vars(r)["phone"], req.Body)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, msg)
}

// GetChat handles GET /chats/{phone}
func (h *Handler) GetChat(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.GetChat(mux.Vars(r)["phone"])
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, msgs)
}
