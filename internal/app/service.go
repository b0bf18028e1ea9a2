package app

import (
	"context"
)

// ApplicationService is the single interface all UI adapters call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// CreateParty creates a customer or vendor master record.
	CreateParty(ctx context.Context, req CreatePartyRequest) (*PartyResult, error)

	// GetParty returns a single party by ID.
	GetParty(ctx context.Context, partyID string) (*PartyResult, error)

	// ListParties returns all parties, optionally filtered by type
	// ("customer" or "vendor").
	ListParties(ctx context.Context, partyType *string) (*PartyListResult, error)

	// CreateInvoice creates a new draft invoice with priced lines.
	CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error)

	// FinalizeInvoice transitions a draft invoice to finalized, assigning
	// the next gapless invoice number.
	FinalizeInvoice(ctx context.Context, invoiceID string) (*InvoiceResult, error)

	// AddPayment records a payment against a finalized invoice and mirrors
	// it into the account ledger.
	AddPayment(ctx context.Context, req AddPaymentRequest) (*InvoiceResult, error)

	// GetInvoice returns a single invoice with its line items.
	GetInvoice(ctx context.Context, invoiceID string) (*InvoiceResult, error)

	// ListInvoices returns invoice headers newest first, optionally
	// filtered by status.
	ListInvoices(ctx context.Context, status *string, limit, offset int) (*InvoiceListResult, error)

	// GetInvoiceBreakdown composes the printable settlement record for an
	// invoice: normalized lines, tax components, and reconciled balance.
	// Reconciliation warnings ride along rather than failing the call.
	GetInvoiceBreakdown(ctx context.Context, invoiceID string) (*BreakdownResult, error)

	// CreateJobCard opens a repair/custom-work order.
	CreateJobCard(ctx context.Context, req CreateJobCardRequest) (*JobCardResult, error)

	// GetJobCard returns a single job card by ID.
	GetJobCard(ctx context.Context, jobCardID string) (*JobCardResult, error)

	// ListJobCards returns job cards newest first, optionally filtered by status.
	ListJobCards(ctx context.Context, status *string) (*JobCardListResult, error)

	// UpdateJobCardStatus moves a job card forward through its lifecycle.
	UpdateJobCardStatus(ctx context.Context, jobCardID, status string) (*JobCardResult, error)

	// ConvertJobCard turns a delivered job card into a draft invoice.
	ConvertJobCard(ctx context.Context, jobCardID string) (*InvoiceResult, error)

	// RecordTransaction posts a manual credit or debit to an account.
	RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*TransactionResult, error)

	// ListTransactions returns ledger entries matching the query.
	ListTransactions(ctx context.Context, query TransactionQuery) (*TransactionListResult, error)

	// ListAccounts returns all cash/bank accounts with balances.
	ListAccounts(ctx context.Context) (*AccountListResult, error)

	// GetDailyClosing returns the end-of-day report for a date (YYYY-MM-DD,
	// empty means today).
	GetDailyClosing(ctx context.Context, date string) (*ClosingResult, error)

	// GetSettings returns the shop identity block with placeholders applied.
	GetSettings(ctx context.Context) (*SettingsResult, error)

	// UpdateSettings replaces the shop identity block.
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResult, error)
}
