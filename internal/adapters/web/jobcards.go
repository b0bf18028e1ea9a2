package web

import (
	"net/http"

	"github.com/imanaswer/GOLDY/internal/app"

	"github.com/go-chi/chi/v5"
)

// listJobCards handles GET /api/jobcards?status=.
func (h *Handler) listJobCards(w http.ResponseWriter, r *http.Request) {
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}
	result, err := h.svc.ListJobCards(r.Context(), status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createJobCard handles POST /api/jobcards.
func (h *Handler) createJobCard(w http.ResponseWriter, r *http.Request) {
	var req app.CreateJobCardRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateJobCard(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result)
}

// getJobCard handles GET /api/jobcards/{id}.
func (h *Handler) getJobCard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetJobCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateJobCardStatus handles PATCH /api/jobcards/{id}/status.
func (h *Handler) updateJobCardStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateJobCardStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// convertJobCard handles POST /api/jobcards/{id}/convert.
func (h *Handler) convertJobCard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ConvertJobCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result)
}
