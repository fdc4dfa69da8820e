package handler

import (
	"encoding/json"
	"net/http"

	"github.com/leadbank/crm-service/internal/service"
)

type createLoanRequest struct {
	LeadID int64 `json:"lead_id"`
}

type loanDecisionRequest struct {
	Status string `json:"status"`
}

// CreateLoan handles POST /loans
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.LeadID == 0 {
		h.respondError(w, http.StatusBadRequest, "lead_id is required")
		return
	}

	app, err := h.svc.CreateLoanApplication(req.LeadID, userID(r))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusCreated, app)
}

// ListLoans handles GET /loans with an optional status filter
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	apps, err := h.svc.ListLoanApplications(r.URL.Query().Get("status"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, apps)
}

// GetLoan handles GET /loans/{id}
func (h *Handler) GetLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	app, err := h.svc.GetLoanApplication(id)
	if err != nil {
		h.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, app)
}

// SubmitLoanStep handles PUT /loans/{id}/step
func (h *Handler) SubmitLoanStep(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var input service.StepInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.svc.SubmitStep(id, input)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, app)
}

// DecideLoan handles PUT /loans/{id}/status
func (h *Handler) DecideLoan(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid application id")
		return
	}

	var req loanDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	app, err := h.svc.DecideLoanApplication(id, req.Status)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, app)
}
