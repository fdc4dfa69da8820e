package handler

import (
	"net/http"
	"strconv"
	"strings"
)

// Report query parameters are normalized, never rejected: an unparseable
// compareDate falls back to today inside the resolver, and malformed filter
// entries are simply dropped.

// MonthlyComparison handles GET /performance/monthly-comparison
func (h *Handler) MonthlyComparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := h.svc.MonthlyComparison(r.Context(), q.Get("compareDate"),
		splitCodes(q.Get("segments")), splitIDs(q.Get("teamIds")))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}

// SegmentComparison handles GET /performance/segment-comparison
func (h *Handler) SegmentComparison(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.SegmentComparison(r.Context(), r.URL.Query().Get("compareDate"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, results)
}

// TrendsSummary handles GET /performance/trends-summary
func (h *Handler) TrendsSummary(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.TrendsSummary(r.Context(), r.URL.Query().Get("compareDate"))
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func splitCodes(raw string) []string {
	if raw == "" {
		return nil
	}
	codes := []string{}
	for _, part := range strings.Split(raw, ",") {
		if code := strings.TrimSpace(part); code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func splitIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	ids := []int64{}
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
