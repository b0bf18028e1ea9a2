package web

import (
	"net/http"

	"github.com/imanaswer/GOLDY/internal/app"

	"github.com/go-chi/chi/v5"
)

// listParties handles GET /api/parties?type=customer|vendor.
func (h *Handler) listParties(w http.ResponseWriter, r *http.Request) {
	var partyType *string
	if t := r.URL.Query().Get("type"); t != "" {
		partyType = &t
	}
	result, err := h.svc.ListParties(r.Context(), partyType)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createParty handles POST /api/parties.
func (h *Handler) createParty(w http.ResponseWriter, r *http.Request) {
	var req app.CreatePartyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateParty(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result)
}

// getParty handles GET /api/parties/{id}.
func (h *Handler) getParty(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetParty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
