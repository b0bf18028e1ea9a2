package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// DailyClosing is the end-of-day snapshot for one business date: what was
// billed, what came in per payment mode, and what remains outstanding.
type DailyClosing struct {
	Date             string                     `json:"date"`
	InvoiceCount     int64                      `json:"invoice_count"`
	SalesTotal       decimal.Decimal            `json:"sales_total"`
	CollectedTotal   decimal.Decimal            `json:"collected_total"`
	CollectedByMode  map[string]decimal.Decimal `json:"collected_by_mode"`
	OutstandingTotal decimal.Decimal            `json:"outstanding_total"`
}

// ClosingService produces read-only end-of-day reports. It never writes.
type ClosingService interface {
	GetDailyClosing(ctx context.Context, date string) (*DailyClosing, error)
}

type closingService struct {
	pool *pgxpool.Pool
}

func NewClosingService(pool *pgxpool.Pool) ClosingService {
	return &closingService{pool: pool}
}

func (s *closingService) GetDailyClosing(ctx context.Context, date string) (*DailyClosing, error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	closing := &DailyClosing{
		Date:            date,
		CollectedByMode: map[string]decimal.Decimal{},
	}

	// Sales side: every invoice finalized on the date, cancelled ones excluded.
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM invoices
		WHERE status = 'finalized' AND finalized_at::date = $1::date
	`, date).Scan(&closing.InvoiceCount, &closing.SalesTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize sales for %s: %w", date, err)
	}

	// Collection side: payments dated on the date, regardless of which day
	// their invoice was billed.
	rows, err := s.pool.Query(ctx, `
		SELECT mode, COALESCE(SUM(amount), 0)
		FROM payments
		WHERE date = $1
		GROUP BY mode
		ORDER BY mode
	`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize collections for %s: %w", date, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mode string
		var total decimal.Decimal
		if err := rows.Scan(&mode, &total); err != nil {
			return nil, fmt.Errorf("failed to scan collection row: %w", err)
		}
		if mode == "" {
			mode = "N/A"
		}
		closing.CollectedByMode[mode] = total
		closing.CollectedTotal = closing.CollectedTotal.Add(total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(balance_due), 0)
		FROM invoices
		WHERE status = 'finalized' AND payment_status IN ('unpaid', 'partial')
		  AND finalized_at::date <= $1::date
	`, date).Scan(&closing.OutstandingTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize outstanding for %s: %w", date, err)
	}

	return closing, nil
}
