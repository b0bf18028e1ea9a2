package app

import (
	"github.com/imanaswer/GOLDY/internal/core"
)

// CreatePartyRequest is the input for creating a party master record.
type CreatePartyRequest struct {
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	PartyType string `json:"party_type"`
	GSTIN     string `json:"gstin"`
	Notes     string `json:"notes"`
}

// CreateInvoiceRequest is the input for creating a draft invoice. Items are
// accepted in tolerant snapshot form so clients may omit any numeric field.
type CreateInvoiceRequest struct {
	Date           string               `json:"date"`
	InvoiceType    string               `json:"invoice_type"`
	TaxType        string               `json:"tax_type"`
	GSTPercent     core.Amount          `json:"gst_percent"`
	DiscountAmount core.Amount          `json:"discount_amount"`
	CustomerType   string               `json:"customer_type"`
	CustomerID     string               `json:"customer_id"`
	WalkInName     string               `json:"walk_in_name"`
	WalkInPhone    string               `json:"walk_in_phone"`
	Notes          string               `json:"notes"`
	Items          []core.RawInvoiceLine `json:"items"`
}

// AddPaymentRequest is the input for recording a payment.
type AddPaymentRequest struct {
	InvoiceID string      `json:"invoice_id"`
	Amount    core.Amount `json:"amount"`
	Mode      string      `json:"mode"`
	AccountID string      `json:"account_id"`
	Date      string      `json:"date"`
	Notes     string      `json:"notes"`
}

// CreateJobCardRequest is the input for opening a work order.
type CreateJobCardRequest struct {
	PartyID      string      `json:"party_id"`
	CustomerName string      `json:"customer_name"`
	Description  string      `json:"description"`
	GrossWeight  core.Amount `json:"gross_weight"`
	StoneWeight  core.Amount `json:"stone_weight"`
	Purity       core.Amount `json:"purity"`
	MetalRate    core.Amount `json:"metal_rate"`
	MakingCharge core.Amount `json:"making_charge"`
	Notes        string      `json:"notes"`
}

// RecordTransactionRequest is the input for a manual ledger posting.
type RecordTransactionRequest struct {
	AccountID       string      `json:"account_id"`
	TransactionType string      `json:"transaction_type"`
	Amount          core.Amount `json:"amount"`
	Description     string      `json:"description"`
	ReferenceType   string      `json:"reference_type"`
	ReferenceID     string      `json:"reference_id"`
	Date            string      `json:"date"`
	Notes           string      `json:"notes"`
}

// TransactionQuery narrows a ledger listing.
type TransactionQuery struct {
	AccountID       string
	TransactionType string
	ReferenceType   string
	FromDate        string
	ToDate          string
	Limit           int
	Offset          int
}

// UpdateSettingsRequest replaces the shop identity block.
type UpdateSettingsRequest struct {
	ShopName            string `json:"shop_name"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	GSTIN               string `json:"gstin"`
	TermsAndConditions  string `json:"terms_and_conditions"`
	AuthorizedSignatory string `json:"authorized_signatory"`
}

func (r CreateInvoiceRequest) toDraft() core.InvoiceDraft {
	return core.InvoiceDraft{
		Date:           r.Date,
		InvoiceType:    r.InvoiceType,
		TaxType:        core.TaxType(r.TaxType),
		GSTPercent:     r.GSTPercent.OrZero(),
		DiscountAmount: r.DiscountAmount.OrZero(),
		CustomerType:   core.CustomerType(r.CustomerType),
		CustomerID:     r.CustomerID,
		WalkInName:     r.WalkInName,
		WalkInPhone:    r.WalkInPhone,
		Notes:          r.Notes,
		Items:          r.Items,
	}
}

func (r CreateJobCardRequest) toDraft() core.JobCardDraft {
	return core.JobCardDraft{
		PartyID:      r.PartyID,
		CustomerName: r.CustomerName,
		Description:  r.Description,
		GrossWeight:  r.GrossWeight.OrZero(),
		StoneWeight:  r.StoneWeight.OrZero(),
		Purity:       int(r.Purity.OrZero().IntPart()),
		MetalRate:    r.MetalRate.OrZero(),
		MakingCharge: r.MakingCharge.OrZero(),
		Notes:        r.Notes,
	}
}
