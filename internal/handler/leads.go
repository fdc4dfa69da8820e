package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/leadbank/crm-service/internal/repository"
	"github.com/leadbank/crm-service/internal/service"
)

// CreateLead handles POST /leads
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var input service.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.svc.CreateLead(input)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, lead)
}

// ListLeads handles GET /leads with optional status/segment/agentId filters
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	filter := repository.LeadFilter{
		Status:  strings.TrimSpace(r.URL.Query().Get("status")),
		Segment: strings.TrimSpace(r.URL.Query().Get("segment")),
	}
	if raw := r.URL.Query().Get("agentId"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filter.AgentID = id
		}
	}

	leads, err := h.svc.ListLeads(filter)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, leads)
}

// GetLead handles GET /leads/{id}
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	lead, err := h.svc.GetLead(id)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, lead)
}

// UpdateLead handles PUT /leads/{id}
func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var input service.LeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.svc.UpdateLead(id, input)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, lead)
}

// DeleteLead handles DELETE /leads/{id}
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	if err := h.svc.DeleteLead(id); err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
