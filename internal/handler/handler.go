package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/leadbank/crm-service/internal/service"
	"github.com/sirupsen/logrus"
)

// Handler exposes the HTTP surface over the service layer
type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

// NewHandler initializes a new handler
func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}

// respondError writes the uniform {"error": ...} envelope
func (h *Handler) respondError(w http.ResponseWriter, status int, msg string) {
	h.respondJSON(w, status, map[string]string{"error": msg})
}

// userID extracts the authenticated agent id placed by the auth middleware
func userID(r *http.Request) int64 {
	raw, _ := r.Context().Value("userID").(string)
	id, _ := strconv.ParseInt(raw, 10, 64)
	return id
}
