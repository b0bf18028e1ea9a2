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

// Account is a cash or bank book the ledger posts against.
type Account struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	AccountType string          `json:"account_type"`
	Balance     decimal.Decimal `json:"balance"`
}

// TransactionFilter narrows a ledger listing. Zero values mean "no filter".
type TransactionFilter struct {
	AccountID       string
	TransactionType TransactionType
	ReferenceType   ReferenceType
	FromDate        string // YYYY-MM-DD inclusive
	ToDate          string // YYYY-MM-DD inclusive
	Limit           int
	Offset          int
}

// TransactionSummary aggregates a filtered ledger slice.
type TransactionSummary struct {
	TotalCredit decimal.Decimal `json:"total_credit"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	Net         decimal.Decimal `json:"net"`
	Count       int64           `json:"count"`
}

// TransactionService posts and reads the cash/bank ledger. Account balances
// are maintained in the same transaction as each posting.
type TransactionService interface {
	RecordTransaction(ctx context.Context, accountID string, txType TransactionType, amount decimal.Decimal, description string, refType ReferenceType, refID, date, notes string) (*AccountTransaction, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]AccountTransaction, error)
	GetSummary(ctx context.Context, filter TransactionFilter) (*TransactionSummary, error)
	GetAccounts(ctx context.Context) ([]Account, error)
}

type transactionService struct {
	pool *pgxpool.Pool
}

func NewTransactionService(pool *pgxpool.Pool) TransactionService {
	return &transactionService{pool: pool}
}

func (s *transactionService) RecordTransaction(ctx context.Context, accountID string, txType TransactionType, amount decimal.Decimal, description string, refType ReferenceType, refID, date, notes string) (*AccountTransaction, error) {
	if accountID == "" {
		return nil, &ValidationError{Field: "account_id", Message: "account is required"}
	}
	if txType != TransactionCredit && txType != TransactionDebit {
		return nil, &ValidationError{Field: "transaction_type", Message: fmt.Sprintf("must be credit or debit, got %q", txType)}
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, &ValidationError{Field: "amount", Message: "amount must be > 0"}
	}
	if refType == "" {
		refType = ReferenceManual
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var balance decimal.Decimal
	err = tx.QueryRow(ctx, "SELECT balance FROM accounts WHERE id = $1 FOR UPDATE", accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("account %s not found", accountID)
		}
		return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}

	if txType == TransactionCredit {
		balance = balance.Add(amount)
	} else {
		balance = balance.Sub(amount)
	}

	id := uuid.NewString()
	var refIDArg *string
	if refID != "" {
		refIDArg = &refID
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO transactions (id, account_id, transaction_type, amount, description, reference_type, reference_id, notes, date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, id, accountID, string(txType), amount, description, string(refType), refIDArg, notes, date)
	if err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}

	if _, err = tx.Exec(ctx, "UPDATE accounts SET balance = $1 WHERE id = $2", balance, accountID); err != nil {
		return nil, fmt.Errorf("failed to update account balance: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return s.getTransaction(ctx, id)
}

func (s *transactionService) getTransaction(ctx context.Context, id string) (*AccountTransaction, error) {
	var t AccountTransaction
	var refID *string
	err := s.pool.QueryRow(ctx, `
		SELECT id, account_id, transaction_type, amount, COALESCE(description, ''),
		       reference_type, reference_id, COALESCE(notes, ''), date::text, created_at
		FROM transactions WHERE id = $1
	`, id).Scan(&t.ID, &t.AccountID, &t.TransactionType, &t.Amount, &t.Description,
		&t.ReferenceType, &refID, &t.Notes, &t.Date, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("transaction %s not found", id)
		}
		return nil, fmt.Errorf("failed to fetch transaction %s: %w", id, err)
	}
	if refID != nil {
		t.ReferenceID = *refID
	}
	return &t, nil
}

// clause builds the shared WHERE clause for listings and summaries.
func (f TransactionFilter) clause() (string, []any) {
	where := ""
	args := []any{}
	add := func(cond string, val any) {
		if where == "" {
			where = " WHERE "
		} else {
			where += " AND "
		}
		args = append(args, val)
		where += fmt.Sprintf(cond, len(args))
	}
	if f.AccountID != "" {
		add("account_id = $%d", f.AccountID)
	}
	if f.TransactionType != "" {
		add("transaction_type = $%d", string(f.TransactionType))
	}
	if f.ReferenceType != "" {
		add("reference_type = $%d", string(f.ReferenceType))
	}
	if f.FromDate != "" {
		add("date >= $%d", f.FromDate)
	}
	if f.ToDate != "" {
		add("date <= $%d", f.ToDate)
	}
	return where, args
}

func (s *transactionService) ListTransactions(ctx context.Context, filter TransactionFilter) ([]AccountTransaction, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	where, args := filter.clause()
	query := fmt.Sprintf(`
		SELECT id, account_id, transaction_type, amount, COALESCE(description, ''),
		       reference_type, reference_id, COALESCE(notes, ''), date::text, created_at
		FROM transactions%s
		ORDER BY date DESC, created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var txns []AccountTransaction
	for rows.Next() {
		var t AccountTransaction
		var refID *string
		if err := rows.Scan(&t.ID, &t.AccountID, &t.TransactionType, &t.Amount, &t.Description,
			&t.ReferenceType, &refID, &t.Notes, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		if refID != nil {
			t.ReferenceID = *refID
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

func (s *transactionService) GetSummary(ctx context.Context, filter TransactionFilter) (*TransactionSummary, error) {
	where, args := filter.clause()
	query := `
		SELECT
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'credit'), 0),
			COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'debit'), 0),
			COUNT(*)
		FROM transactions` + where

	var summary TransactionSummary
	err := s.pool.QueryRow(ctx, query, args...).Scan(&summary.TotalCredit, &summary.TotalDebit, &summary.Count)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}
	summary.Net = summary.TotalCredit.Sub(summary.TotalDebit)
	return &summary, nil
}

func (s *transactionService) GetAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name, account_type, balance FROM accounts ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.AccountType, &a.Balance); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}
