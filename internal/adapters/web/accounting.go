package web

import (
	"net/http"
	"strconv"

	"github.com/imanaswer/GOLDY/internal/app"
)

// listAccounts handles GET /api/accounts.
func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListAccounts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listTransactions handles GET /api/transactions with optional filters:
// account, type, reference, from, to, limit, offset.
func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	result, err := h.svc.ListTransactions(r.Context(), app.TransactionQuery{
		AccountID:       q.Get("account"),
		TransactionType: q.Get("type"),
		ReferenceType:   q.Get("reference"),
		FromDate:        q.Get("from"),
		ToDate:          q.Get("to"),
		Limit:           limit,
		Offset:          offset,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// recordTransaction handles POST /api/transactions.
func (h *Handler) recordTransaction(w http.ResponseWriter, r *http.Request) {
	var req app.RecordTransactionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	result, err := h.svc.RecordTransaction(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	writeBody(w, result)
}

// dailyClosing handles GET /api/reports/daily-closing?date=YYYY-MM-DD.
func (h *Handler) dailyClosing(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDailyClosing(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
