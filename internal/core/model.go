package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxType selects the GST split mode for an invoice.
type TaxType string

const (
	// TaxCGSTSGST splits the tax into equal intra-state halves.
	TaxCGSTSGST TaxType = "cgst_sgst"
	// TaxIGST books the full tax as a single inter-state component.
	TaxIGST TaxType = "igst"
)

// CustomerType distinguishes invoices linked to a stored party record
// from one-off walk-in sales.
type CustomerType string

const (
	CustomerSaved  CustomerType = "saved"
	CustomerWalkIn CustomerType = "walk-in"
)

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusFinalized InvoiceStatus = "finalized"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPartial PaymentStatus = "partial"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// defaultPurity is the common fineness (22K) assumed when a line omits purity.
const defaultPurity = 916

// defaultGSTPercent applies when an invoice snapshot carries no GST rate.
var defaultGSTPercent = decimal.NewFromInt(5)

// RawInvoiceLine is one billed article exactly as the ledger snapshot carries
// it: every numeric field optional and tolerant of legacy encodings. The
// `weight` field is the single pre-gross/stone weight some old records still
// use; `gross_weight` wins when both are present.
type RawInvoiceLine struct {
	Description    string `json:"description"`
	Qty            Amount `json:"qty"`
	GrossWeight    Amount `json:"gross_weight"`
	Weight         Amount `json:"weight"`
	StoneWeight    Amount `json:"stone_weight"`
	NetGoldWeight  Amount `json:"net_gold_weight"`
	Purity         Amount `json:"purity"`
	MetalRate      Amount `json:"metal_rate"`
	GoldValue      Amount `json:"gold_value"`
	MakingValue    Amount `json:"making_value"`
	StoneCharges   Amount `json:"stone_charges"`
	WastageCharges Amount `json:"wastage_charges"`
	ItemDiscount   Amount `json:"item_discount"`
	VATAmount      Amount `json:"vat_amount"`
	LineTotal      Amount `json:"line_total"`
}

// InvoiceLine is the normalized form of a billed article: every field
// concrete, weights in grams, currency amounts never null.
type InvoiceLine struct {
	Description    string          `json:"description"`
	Qty            int64           `json:"qty"`
	GrossWeight    decimal.Decimal `json:"gross_weight"`
	StoneWeight    decimal.Decimal `json:"stone_weight"`
	NetGoldWeight  decimal.Decimal `json:"net_gold_weight"`
	Purity         int             `json:"purity"`
	MetalRate      decimal.Decimal `json:"metal_rate"`
	GoldValue      decimal.Decimal `json:"gold_value"`
	MakingValue    decimal.Decimal `json:"making_value"`
	StoneCharges   decimal.Decimal `json:"stone_charges"`
	WastageCharges decimal.Decimal `json:"wastage_charges"`
	ItemDiscount   decimal.Decimal `json:"item_discount"`
	VATAmount      decimal.Decimal `json:"vat_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
}

// Invoice is an invoice header plus its ordered line items. When consumed by
// Compose it is a read-only snapshot; the composition engine never mutates
// or persists it.
type Invoice struct {
	ID            string        `json:"id"`
	InvoiceNumber string        `json:"invoice_number"`
	Date          string        `json:"date"` // YYYY-MM-DD
	Status        InvoiceStatus `json:"status"`
	InvoiceType   string        `json:"invoice_type"`

	TaxType    TaxType `json:"tax_type"`
	GSTPercent Amount  `json:"gst_percent"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	VATTotal       decimal.Decimal `json:"vat_total"`
	CGSTTotal      Amount          `json:"cgst_total"`
	SGSTTotal      Amount          `json:"sgst_total"`
	IGSTTotal      Amount          `json:"igst_total"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	// BalanceDue is signed: positive means the customer owes, negative means
	// the shop owes change.
	BalanceDue decimal.Decimal `json:"balance_due"`

	CustomerType    CustomerType `json:"customer_type"`
	CustomerID      string       `json:"customer_id,omitempty"`
	CustomerName    string       `json:"customer_name,omitempty"`
	CustomerPhone   string       `json:"customer_phone,omitempty"`
	CustomerAddress string       `json:"customer_address,omitempty"`
	CustomerGSTIN   string       `json:"customer_gstin,omitempty"`
	WalkInName      string       `json:"walk_in_name,omitempty"`
	WalkInPhone     string       `json:"walk_in_phone,omitempty"`

	PaymentStatus PaymentStatus `json:"payment_status"`
	Notes         string        `json:"notes,omitempty"`

	Items []RawInvoiceLine `json:"items"`

	CreatedAt   time.Time  `json:"created_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// CustomerDetails is the nested party record attached to a full-details
// snapshot for saved-customer invoices. Its fields win over the flat
// customer_* columns on the invoice header.
type CustomerDetails struct {
	Name    string `json:"name,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// Payment is one settlement event against an invoice. Older records use
// payment_mode instead of mode; ModeLabel resolves the two.
type Payment struct {
	ID         string `json:"id,omitempty"`
	InvoiceID  string `json:"invoice_id,omitempty"`
	Mode       string `json:"mode,omitempty"`
	LegacyMode string `json:"payment_mode,omitempty"`
	AccountID  string `json:"account_id,omitempty"`
	Amount     Amount `json:"amount"`
	Date       string `json:"date,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// ModeLabel returns the display label for the payment mode.
func (p Payment) ModeLabel() string {
	if p.Mode != "" {
		return p.Mode
	}
	if p.LegacyMode != "" {
		return p.LegacyMode
	}
	return "N/A"
}

// ShopSettings is the shop's descriptive identity block. It is never
// validated; Defaulted fills placeholders for anything the shop has not
// configured yet.
type ShopSettings struct {
	ShopName            string `json:"shop_name"`
	Address             string `json:"address"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	GSTIN               string `json:"gstin"`
	TermsAndConditions  string `json:"terms_and_conditions"`
	AuthorizedSignatory string `json:"authorized_signatory"`
}

// Defaulted returns a copy with placeholder values for empty fields.
func (s ShopSettings) Defaulted() ShopSettings {
	if s.ShopName == "" {
		s.ShopName = "Gold Jewellery ERP"
	}
	if s.Address == "" {
		s.Address = "123 Main Street, City, Country"
	}
	if s.Phone == "" {
		s.Phone = "+968 1234 5678"
	}
	if s.Email == "" {
		s.Email = "contact@shop.com"
	}
	if s.GSTIN == "" {
		s.GSTIN = "GST1234567890"
	}
	if s.TermsAndConditions == "" {
		s.TermsAndConditions = "1. Goods once sold cannot be returned.\n2. Gold purity as per invoice.\n3. Making charges are non-refundable."
	}
	if s.AuthorizedSignatory == "" {
		s.AuthorizedSignatory = "Authorized Signatory"
	}
	return s
}

// PartyType distinguishes customers from vendors in the parties master.
type PartyType string

const (
	PartyCustomer PartyType = "customer"
	PartyVendor   PartyType = "vendor"
)

// Party is a stored customer or vendor master record.
type Party struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	PartyType PartyType `json:"party_type"`
	GSTIN     string    `json:"gstin,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TransactionType is the direction of an account ledger entry.
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// ReferenceType ties an account transaction back to its source document.
// The four values below are the closed set the system writes; anything else
// read from old data falls back to a generic label rather than failing.
type ReferenceType string

const (
	ReferenceInvoice  ReferenceType = "invoice"
	ReferencePurchase ReferenceType = "purchase"
	ReferenceManual   ReferenceType = "manual"
	ReferenceJobCard  ReferenceType = "jobcard"
)

// Label returns the display label for the reference source.
func (r ReferenceType) Label() string {
	switch r {
	case ReferenceInvoice:
		return "Invoice"
	case ReferencePurchase:
		return "Purchase"
	case ReferenceManual, "":
		return "Manual Entry"
	case ReferenceJobCard:
		return "Job Card"
	default:
		return "Other (" + string(r) + ")"
	}
}

// AccountTransaction is one credit or debit against a cash/bank account.
type AccountTransaction struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	TransactionType TransactionType `json:"transaction_type"`
	Amount          decimal.Decimal `json:"amount"`
	Description     string          `json:"description,omitempty"`
	ReferenceType   ReferenceType   `json:"reference_type"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	Date            string          `json:"date"`
	CreatedAt       time.Time       `json:"created_at"`
}

type JobCardStatus string

const (
	JobCardPending    JobCardStatus = "pending"
	JobCardInProgress JobCardStatus = "in_progress"
	JobCardCompleted  JobCardStatus = "completed"
	JobCardDelivered  JobCardStatus = "delivered"
)

// JobCard is a repair/custom-work order that can later convert into an
// invoice once delivered.
type JobCard struct {
	ID              string          `json:"id"`
	PartyID         string          `json:"party_id,omitempty"`
	CustomerName    string          `json:"customer_name"`
	Description     string          `json:"description"`
	GrossWeight     decimal.Decimal `json:"gross_weight"`
	StoneWeight     decimal.Decimal `json:"stone_weight"`
	Purity          int             `json:"purity"`
	MetalRate       decimal.Decimal `json:"metal_rate"`
	MakingCharge    decimal.Decimal `json:"making_charge"`
	EstimatedAmount decimal.Decimal `json:"estimated_amount"`
	Status          JobCardStatus   `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	InvoiceID       *string         `json:"invoice_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
}
