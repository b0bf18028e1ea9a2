package web

import (
	"net/http"

	"github.com/imanaswer/GOLDY/internal/app"

	"github.com/go-chi/chi/v5"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// Parties
		r.Get("/api/parties", h.listParties)
		r.Post("/api/parties", h.createParty)
		r.Get("/api/parties/{id}", h.getParty)

		// Invoices
		r.Get("/api/invoices", h.listInvoices)
		r.Post("/api/invoices", h.createInvoice)
		r.Get("/api/invoices/{id}", h.getInvoice)
		r.Post("/api/invoices/{id}/finalize", h.finalizeInvoice)
		r.Post("/api/invoices/{id}/payments", h.addPayment)
		r.Get("/api/invoices/{id}/breakdown", h.getBreakdown)

		// Job cards
		r.Get("/api/jobcards", h.listJobCards)
		r.Post("/api/jobcards", h.createJobCard)
		r.Get("/api/jobcards/{id}", h.getJobCard)
		r.Patch("/api/jobcards/{id}/status", h.updateJobCardStatus)
		r.Post("/api/jobcards/{id}/convert", h.convertJobCard)

		// Accounts & ledger
		r.Get("/api/accounts", h.listAccounts)
		r.Get("/api/transactions", h.listTransactions)
		r.Post("/api/transactions", h.recordTransaction)
		r.Get("/api/reports/daily-closing", h.dailyClosing)

		// Settings
		r.Get("/api/settings", h.getSettings)
		r.Put("/api/settings", h.updateSettings)
	})

	h.router = r
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
