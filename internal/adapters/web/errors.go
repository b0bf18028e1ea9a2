package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/imanaswer/GOLDY/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeBody encodes v onto an already-started response.
func writeBody(w http.ResponseWriter, v any) {
	_ = json.NewEncoder(w).Encode(v)
}

// writeServiceError maps service errors onto HTTP statuses: validation and
// configuration problems are the client's fault, missing records are 404,
// everything else is a 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *core.ValidationError
	if errors.As(err, &valErr) {
		writeError(w, r, valErr.Error(), "VALIDATION_ERROR", http.StatusBadRequest)
		return
	}
	var cfgErr *core.ConfigurationError
	if errors.As(err, &cfgErr) {
		writeError(w, r, cfgErr.Error(), "CONFIGURATION_ERROR", http.StatusBadRequest)
		return
	}
	if strings.Contains(err.Error(), "not found") {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	if strings.Contains(err.Error(), "cannot") || strings.Contains(err.Error(), "unknown") ||
		strings.Contains(err.Error(), "already") {
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
		return
	}
	writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
}

// decodeJSON reads a JSON request body into v, rejecting malformed payloads.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
