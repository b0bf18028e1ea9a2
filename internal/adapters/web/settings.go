package web

import (
	"net/http"

	"github.com/imanaswer/GOLDY/internal/app"
)

// getSettings handles GET /api/settings.
func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetSettings(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateSettings handles PUT /api/settings.
func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	var req app.UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.UpdateSettings(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
