package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// JobCardDraft is the input for opening a repair or custom-work order.
type JobCardDraft struct {
	PartyID      string
	CustomerName string
	Description  string
	GrossWeight  decimal.Decimal
	StoneWeight  decimal.Decimal
	Purity       int
	MetalRate    decimal.Decimal
	MakingCharge decimal.Decimal
	Notes        string
}

// JobCardService manages work orders through their lifecycle:
// pending → in_progress → completed → delivered, with an optional
// conversion into a draft invoice after delivery.
type JobCardService interface {
	CreateJobCard(ctx context.Context, draft JobCardDraft) (*JobCard, error)
	GetJobCard(ctx context.Context, jobCardID string) (*JobCard, error)
	ListJobCards(ctx context.Context, status *JobCardStatus) ([]JobCard, error)
	UpdateStatus(ctx context.Context, jobCardID string, status JobCardStatus) (*JobCard, error)
	ConvertToInvoice(ctx context.Context, jobCardID string, invoices InvoiceService) (*Invoice, error)
}

type jobCardService struct {
	pool *pgxpool.Pool
}

func NewJobCardService(pool *pgxpool.Pool) JobCardService {
	return &jobCardService{pool: pool}
}

// statusRank orders the lifecycle so transitions can only move forward.
func statusRank(s JobCardStatus) int {
	switch s {
	case JobCardPending:
		return 0
	case JobCardInProgress:
		return 1
	case JobCardCompleted:
		return 2
	case JobCardDelivered:
		return 3
	default:
		return -1
	}
}

func (s *jobCardService) CreateJobCard(ctx context.Context, draft JobCardDraft) (*JobCard, error) {
	if draft.CustomerName == "" {
		return nil, &ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if draft.Description == "" {
		return nil, &ValidationError{Field: "description", Message: "work description is required"}
	}

	purity := draft.Purity
	if purity == 0 {
		purity = defaultPurity
	}

	// Estimate mirrors line pricing: net gold at rate plus making charge.
	net := draft.GrossWeight.Sub(draft.StoneWeight)
	if net.IsNegative() {
		net = decimal.Zero
	}
	estimated := net.Mul(draft.MetalRate).Add(draft.MakingCharge).Round(CurrencyPlaces)

	var partyID *string
	if draft.PartyID != "" {
		partyID = &draft.PartyID
	}

	id := uuid.NewString()
	_, err := s.pool.Exec(ctx, `
		INSERT INTO jobcards (
			id, party_id, customer_name, description,
			gross_weight, stone_weight, purity, metal_rate, making_charge,
			estimated_amount, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending', $11)
	`, id, partyID, draft.CustomerName, draft.Description,
		draft.GrossWeight, draft.StoneWeight, purity, draft.MetalRate, draft.MakingCharge,
		estimated, draft.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job card: %w", err)
	}

	return s.GetJobCard(ctx, id)
}

const jobCardColumns = `
	id, party_id, customer_name, description,
	gross_weight, stone_weight, purity, metal_rate, making_charge,
	estimated_amount, status, notes, invoice_id,
	created_at, completed_at, delivered_at
`

func scanJobCard(row pgx.Row) (*JobCard, error) {
	var jc JobCard
	var partyID *string
	err := row.Scan(
		&jc.ID, &partyID, &jc.CustomerName, &jc.Description,
		&jc.GrossWeight, &jc.StoneWeight, &jc.Purity, &jc.MetalRate, &jc.MakingCharge,
		&jc.EstimatedAmount, &jc.Status, &jc.Notes, &jc.InvoiceID,
		&jc.CreatedAt, &jc.CompletedAt, &jc.DeliveredAt,
	)
	if err != nil {
		return nil, err
	}
	if partyID != nil {
		jc.PartyID = *partyID
	}
	return &jc, nil
}

func (s *jobCardService) GetJobCard(ctx context.Context, jobCardID string) (*JobCard, error) {
	row := s.pool.QueryRow(ctx, "SELECT "+jobCardColumns+" FROM jobcards WHERE id = $1", jobCardID)
	jc, err := scanJobCard(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job card %s not found", jobCardID)
		}
		return nil, fmt.Errorf("failed to fetch job card %s: %w", jobCardID, err)
	}
	return jc, nil
}

func (s *jobCardService) ListJobCards(ctx context.Context, status *JobCardStatus) ([]JobCard, error) {
	query := "SELECT " + jobCardColumns + " FROM jobcards"
	args := []any{}
	if status != nil {
		query += " WHERE status = $1"
		args = append(args, string(*status))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query job cards: %w", err)
	}
	defer rows.Close()

	var cards []JobCard
	for rows.Next() {
		jc, err := scanJobCard(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job card: %w", err)
		}
		cards = append(cards, *jc)
	}
	return cards, rows.Err()
}

func (s *jobCardService) UpdateStatus(ctx context.Context, jobCardID string, status JobCardStatus) (*JobCard, error) {
	if statusRank(status) < 0 {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var current JobCardStatus
	err = tx.QueryRow(ctx, "SELECT status FROM jobcards WHERE id = $1 FOR UPDATE", jobCardID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("job card %s not found", jobCardID)
		}
		return nil, fmt.Errorf("failed to fetch job card %s: %w", jobCardID, err)
	}
	if statusRank(status) <= statusRank(current) {
		return nil, fmt.Errorf("job card %s cannot move from %s to %s", jobCardID, current, status)
	}

	switch status {
	case JobCardCompleted:
		_, err = tx.Exec(ctx, "UPDATE jobcards SET status = $1, completed_at = NOW() WHERE id = $2", string(status), jobCardID)
	case JobCardDelivered:
		_, err = tx.Exec(ctx, `
			UPDATE jobcards
			SET status = $1, delivered_at = NOW(), completed_at = COALESCE(completed_at, NOW())
			WHERE id = $2
		`, string(status), jobCardID)
	default:
		_, err = tx.Exec(ctx, "UPDATE jobcards SET status = $1 WHERE id = $2", string(status), jobCardID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update job card status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}

	return s.GetJobCard(ctx, jobCardID)
}

// ConvertToInvoice turns a delivered job card into a draft sales invoice
// carrying a single line priced from the card, then links the card to it.
func (s *jobCardService) ConvertToInvoice(ctx context.Context, jobCardID string, invoices InvoiceService) (*Invoice, error) {
	jc, err := s.GetJobCard(ctx, jobCardID)
	if err != nil {
		return nil, err
	}
	if jc.Status != JobCardDelivered {
		return nil, fmt.Errorf("job card %s cannot be invoiced: status is %s (must be delivered)", jobCardID, jc.Status)
	}
	if jc.InvoiceID != nil {
		return nil, fmt.Errorf("job card %s is already billed on invoice %s", jobCardID, *jc.InvoiceID)
	}

	draft := InvoiceDraft{
		Date:         time.Now().Format("2006-01-02"),
		InvoiceType:  "jobwork",
		CustomerType: CustomerWalkIn,
		WalkInName:   jc.CustomerName,
		Notes:        fmt.Sprintf("Converted from job card %s", jc.ID),
		Items: []RawInvoiceLine{{
			Description: jc.Description,
			Qty:         NewAmount(decimal.NewFromInt(1)),
			GrossWeight: NewAmount(jc.GrossWeight),
			StoneWeight: NewAmount(jc.StoneWeight),
			Purity:      NewAmount(decimal.NewFromInt(int64(jc.Purity))),
			MetalRate:   NewAmount(jc.MetalRate),
			MakingValue: NewAmount(jc.MakingCharge),
		}},
	}
	if jc.PartyID != "" {
		draft.CustomerType = CustomerSaved
		draft.CustomerID = jc.PartyID
		draft.WalkInName = ""
	}

	inv, err := invoices.CreateInvoice(ctx, draft)
	if err != nil {
		return nil, fmt.Errorf("failed to create invoice for job card %s: %w", jobCardID, err)
	}

	if _, err := s.pool.Exec(ctx, "UPDATE jobcards SET invoice_id = $1 WHERE id = $2", inv.ID, jobCardID); err != nil {
		return nil, fmt.Errorf("failed to link job card %s to invoice: %w", jobCardID, err)
	}
	return inv, nil
}
