package web_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	webAdapter "github.com/imanaswer/GOLDY/internal/adapters/web"
	"github.com/imanaswer/GOLDY/internal/app"
	"github.com/imanaswer/GOLDY/internal/core"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// stubService overrides only the operations a test exercises; calling
// anything else panics on the embedded nil interface.
type stubService struct {
	app.ApplicationService
	breakdown *app.BreakdownResult
	err       error
}

func (s *stubService) GetInvoiceBreakdown(ctx context.Context, invoiceID string) (*app.BreakdownResult, error) {
	return s.breakdown, s.err
}

func TestGetBreakdown_WarningsLoggedAndReturned(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	svc := &stubService{breakdown: &app.BreakdownResult{
		Breakdown: &core.Breakdown{InvoiceNumber: "INV-000001"},
		FileName:  "Invoice_INV-000001.pdf",
		Warnings:  []string{"recorded payments total 50.000 does not match invoice paid amount 94.500"},
	}}
	handler := webAdapter.NewHandler(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/inv-1/breakdown", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp app.BreakdownResult
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Fatalf("expected 1 warning in envelope, got %d", len(resp.Warnings))
	}

	logged := buf.String()
	if !strings.Contains(logged, "reconciliation mismatch") {
		t.Errorf("expected a reconciliation warning log, got: %s", logged)
	}
	if !strings.Contains(logged, "inv-1") {
		t.Errorf("warning log should carry the invoice id, got: %s", logged)
	}
}

func TestGetBreakdown_CleanInvoiceLogsNothing(t *testing.T) {
	var buf bytes.Buffer
	orig := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = orig }()

	svc := &stubService{breakdown: &app.BreakdownResult{
		Breakdown: &core.Breakdown{InvoiceNumber: "INV-000002"},
		FileName:  "Invoice_INV-000002.pdf",
	}}
	handler := webAdapter.NewHandler(svc, "")

	req := httptest.NewRequest(http.MethodGet, "/api/invoices/inv-2/breakdown", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(buf.String(), "reconciliation mismatch") {
		t.Errorf("no warning should be logged for a clean invoice, got: %s", buf.String())
	}
}
