package app

import "github.com/imanaswer/GOLDY/internal/core"

// PartyResult is returned by single-party operations.
type PartyResult struct {
	Party *core.Party `json:"party"`
}

// PartyListResult is returned by ListParties.
type PartyListResult struct {
	Parties []core.Party `json:"parties"`
}

// InvoiceResult is returned by invoice lifecycle operations.
type InvoiceResult struct {
	Invoice *core.Invoice `json:"invoice"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.Invoice `json:"invoices"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
}

// BreakdownTotals carries the headline figures pre-formatted at display
// precision so every adapter renders them identically.
type BreakdownTotals struct {
	Subtotal       string `json:"subtotal"`
	DiscountAmount string `json:"discount_amount"`
	TaxableAmount  string `json:"taxable_amount"`
	TotalTax       string `json:"total_tax"`
	GrandTotal     string `json:"grand_total"`
	TotalPaid      string `json:"total_paid"`
	Settlement     string `json:"settlement"`
}

// BreakdownResult is returned by GetInvoiceBreakdown. Warnings are
// human-readable reconciliation notices; their presence never blocks use of
// the breakdown.
type BreakdownResult struct {
	Breakdown *core.Breakdown `json:"breakdown"`
	Totals    BreakdownTotals `json:"totals"`
	FileName  string          `json:"file_name"`
	Warnings  []string        `json:"warnings,omitempty"`
}

// JobCardResult is returned by job card operations.
type JobCardResult struct {
	JobCard *core.JobCard `json:"job_card"`
}

// JobCardListResult is returned by ListJobCards.
type JobCardListResult struct {
	JobCards []core.JobCard `json:"job_cards"`
}

// TransactionResult is returned by RecordTransaction.
type TransactionResult struct {
	Transaction *core.AccountTransaction `json:"transaction"`
}

// TransactionListResult is returned by ListTransactions, with the summary of
// the same filtered slice.
type TransactionListResult struct {
	Transactions []core.AccountTransaction `json:"transactions"`
	Summary      *core.TransactionSummary  `json:"summary"`
}

// AccountListResult is returned by ListAccounts.
type AccountListResult struct {
	Accounts []core.Account `json:"accounts"`
}

// ClosingResult is returned by GetDailyClosing.
type ClosingResult struct {
	Closing *core.DailyClosing `json:"closing"`
}

// SettingsResult is returned by settings operations.
type SettingsResult struct {
	Settings *core.ShopSettings `json:"settings"`
}
