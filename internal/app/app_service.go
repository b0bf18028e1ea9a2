package app

import (
	"context"
	"fmt"

	"github.com/imanaswer/GOLDY/internal/core"
)

type appService struct {
	parties      core.PartyService
	invoices     core.InvoiceService
	jobCards     core.JobCardService
	transactions core.TransactionService
	closings     core.ClosingService
	settings     core.SettingsService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	parties core.PartyService,
	invoices core.InvoiceService,
	jobCards core.JobCardService,
	transactions core.TransactionService,
	closings core.ClosingService,
	settings core.SettingsService,
) ApplicationService {
	return &appService{
		parties:      parties,
		invoices:     invoices,
		jobCards:     jobCards,
		transactions: transactions,
		closings:     closings,
		settings:     settings,
	}
}

func (s *appService) CreateParty(ctx context.Context, req CreatePartyRequest) (*PartyResult, error) {
	party, err := s.parties.CreateParty(ctx, req.Name, req.Phone, req.Address,
		core.PartyType(req.PartyType), req.GSTIN, req.Notes)
	if err != nil {
		return nil, err
	}
	return &PartyResult{Party: party}, nil
}

func (s *appService) GetParty(ctx context.Context, partyID string) (*PartyResult, error) {
	party, err := s.parties.GetParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	return &PartyResult{Party: party}, nil
}

func (s *appService) ListParties(ctx context.Context, partyType *string) (*PartyListResult, error) {
	var filter *core.PartyType
	if partyType != nil && *partyType != "" {
		pt := core.PartyType(*partyType)
		if pt != core.PartyCustomer && pt != core.PartyVendor {
			return nil, fmt.Errorf("unknown party type %q", *partyType)
		}
		filter = &pt
	}
	parties, err := s.parties.GetParties(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &PartyListResult{Parties: parties}, nil
}

func (s *appService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error) {
	inv, err := s.invoices.CreateInvoice(ctx, req.toDraft())
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) FinalizeInvoice(ctx context.Context, invoiceID string) (*InvoiceResult, error) {
	inv, err := s.invoices.FinalizeInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) AddPayment(ctx context.Context, req AddPaymentRequest) (*InvoiceResult, error) {
	inv, err := s.invoices.AddPayment(ctx, req.InvoiceID, req.Amount.OrZero(),
		req.Mode, req.AccountID, req.Date, req.Notes)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) GetInvoice(ctx context.Context, invoiceID string) (*InvoiceResult, error) {
	inv, err := s.invoices.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) ListInvoices(ctx context.Context, status *string, limit, offset int) (*InvoiceListResult, error) {
	var filter *core.InvoiceStatus
	if status != nil && *status != "" {
		st := core.InvoiceStatus(*status)
		switch st {
		case core.InvoiceStatusDraft, core.InvoiceStatusFinalized, core.InvoiceStatusCancelled:
			filter = &st
		default:
			return nil, fmt.Errorf("unknown invoice status %q", *status)
		}
	}
	invoices, err := s.invoices.ListInvoices(ctx, filter, limit, offset)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: invoices, Limit: limit, Offset: offset}, nil
}

func (s *appService) GetInvoiceBreakdown(ctx context.Context, invoiceID string) (*BreakdownResult, error) {
	inv, details, payments, err := s.invoices.GetInvoiceFullDetails(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	shop, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	breakdown, warnings, err := core.Compose(core.ComposeInput{
		Invoice:         *inv,
		CustomerDetails: details,
		ShopSettings:    *shop,
		Payments:        payments,
	})
	if err != nil {
		return nil, err
	}

	result := &BreakdownResult{
		Breakdown: breakdown,
		FileName:  breakdown.FileName(),
		Totals: BreakdownTotals{
			Subtotal:       core.FormatCurrency(breakdown.Subtotal),
			DiscountAmount: core.FormatCurrency(breakdown.DiscountAmount),
			TaxableAmount:  core.FormatCurrency(breakdown.TaxableAmount),
			TotalTax:       core.FormatCurrency(breakdown.TotalTax),
			GrandTotal:     core.FormatCurrency(breakdown.GrandTotal),
			TotalPaid:      core.FormatCurrency(breakdown.TotalPaid),
			Settlement:     core.FormatCurrency(breakdown.Settlement.Amount),
		},
	}
	for _, w := range warnings {
		result.Warnings = append(result.Warnings, w.Message())
	}
	return result, nil
}

func (s *appService) CreateJobCard(ctx context.Context, req CreateJobCardRequest) (*JobCardResult, error) {
	jc, err := s.jobCards.CreateJobCard(ctx, req.toDraft())
	if err != nil {
		return nil, err
	}
	return &JobCardResult{JobCard: jc}, nil
}

func (s *appService) GetJobCard(ctx context.Context, jobCardID string) (*JobCardResult, error) {
	jc, err := s.jobCards.GetJobCard(ctx, jobCardID)
	if err != nil {
		return nil, err
	}
	return &JobCardResult{JobCard: jc}, nil
}

func (s *appService) ListJobCards(ctx context.Context, status *string) (*JobCardListResult, error) {
	var filter *core.JobCardStatus
	if status != nil && *status != "" {
		st := core.JobCardStatus(*status)
		filter = &st
	}
	cards, err := s.jobCards.ListJobCards(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &JobCardListResult{JobCards: cards}, nil
}

func (s *appService) UpdateJobCardStatus(ctx context.Context, jobCardID, status string) (*JobCardResult, error) {
	jc, err := s.jobCards.UpdateStatus(ctx, jobCardID, core.JobCardStatus(status))
	if err != nil {
		return nil, err
	}
	return &JobCardResult{JobCard: jc}, nil
}

func (s *appService) ConvertJobCard(ctx context.Context, jobCardID string) (*InvoiceResult, error) {
	inv, err := s.jobCards.ConvertToInvoice(ctx, jobCardID, s.invoices)
	if err != nil {
		return nil, err
	}
	return &InvoiceResult{Invoice: inv}, nil
}

func (s *appService) RecordTransaction(ctx context.Context, req RecordTransactionRequest) (*TransactionResult, error) {
	t, err := s.transactions.RecordTransaction(ctx, req.AccountID,
		core.TransactionType(req.TransactionType), req.Amount.OrZero(),
		req.Description, core.ReferenceType(req.ReferenceType), req.ReferenceID,
		req.Date, req.Notes)
	if err != nil {
		return nil, err
	}
	return &TransactionResult{Transaction: t}, nil
}

func (s *appService) ListTransactions(ctx context.Context, query TransactionQuery) (*TransactionListResult, error) {
	filter := core.TransactionFilter{
		AccountID:       query.AccountID,
		TransactionType: core.TransactionType(query.TransactionType),
		ReferenceType:   core.ReferenceType(query.ReferenceType),
		FromDate:        query.FromDate,
		ToDate:          query.ToDate,
		Limit:           query.Limit,
		Offset:          query.Offset,
	}
	txns, err := s.transactions.ListTransactions(ctx, filter)
	if err != nil {
		return nil, err
	}
	summary, err := s.transactions.GetSummary(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &TransactionListResult{Transactions: txns, Summary: summary}, nil
}

func (s *appService) ListAccounts(ctx context.Context) (*AccountListResult, error) {
	accounts, err := s.transactions.GetAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountListResult{Accounts: accounts}, nil
}

func (s *appService) GetDailyClosing(ctx context.Context, date string) (*ClosingResult, error) {
	closing, err := s.closings.GetDailyClosing(ctx, date)
	if err != nil {
		return nil, err
	}
	return &ClosingResult{Closing: closing}, nil
}

func (s *appService) GetSettings(ctx context.Context) (*SettingsResult, error) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	return &SettingsResult{Settings: settings}, nil
}

func (s *appService) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SettingsResult, error) {
	settings, err := s.settings.UpdateSettings(ctx, core.ShopSettings{
		ShopName:            req.ShopName,
		Address:             req.Address,
		Phone:               req.Phone,
		Email:               req.Email,
		GSTIN:               req.GSTIN,
		TermsAndConditions:  req.TermsAndConditions,
		AuthorizedSignatory: req.AuthorizedSignatory,
	})
	if err != nil {
		return nil, err
	}
	return &SettingsResult{Settings: settings}, nil
}
