package web

import (
	"net/http"
	"strconv"

	"github.com/imanaswer/GOLDY/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// listInvoices handles GET /api/invoices?status=&limit=&offset=.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	result, err := h.svc.ListInvoices(r.Context(), status, limit, offset)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createInvoice handles POST /api/invoices.
func (h *Handler) createInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.CreateInvoiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.CreateInvoice(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result)
}

// getInvoice handles GET /api/invoices/{id}.
func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// finalizeInvoice handles POST /api/invoices/{id}/finalize.
func (h *Handler) finalizeInvoice(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.FinalizeInvoice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addPayment handles POST /api/invoices/{id}/payments.
func (h *Handler) addPayment(w http.ResponseWriter, r *http.Request) {
	var req app.AddPaymentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.InvoiceID = chi.URLParam(r, "id")

	result, err := h.svc.AddPayment(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result)
}

// getBreakdown handles GET /api/invoices/{id}/breakdown.
// Reconciliation warnings ride along in the envelope; only fatal
// validation/configuration problems fail the request.
func (h *Handler) getBreakdown(w http.ResponseWriter, r *http.Request) {
	invoiceID := chi.URLParam(r, "id")
	result, err := h.svc.GetInvoiceBreakdown(r.Context(), invoiceID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	for _, warning := range result.Warnings {
		log.Warn().
			Str("invoice_id", invoiceID).
			Str("request_id", requestIDFromContext(r.Context())).
			Msg("payment reconciliation mismatch: " + warning)
	}
	writeJSON(w, result)
}
