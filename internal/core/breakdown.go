package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ComposeInput is the full-details snapshot the composition engine consumes:
// the priced invoice, the shop identity block, the recorded payments, and —
// for saved customers — the nested party record.
type ComposeInput struct {
	Invoice         Invoice          `json:"invoice"`
	CustomerDetails *CustomerDetails `json:"customer_details,omitempty"`
	ShopSettings    ShopSettings     `json:"shop_settings"`
	Payments        []Payment        `json:"payments"`
}

// CustomerIdentity is the resolved bill-to block on the breakdown.
type CustomerIdentity struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}

// Breakdown is the verified settlement record a renderer lays out into the
// printable invoice. Line order matches the input invoice exactly.
type Breakdown struct {
	InvoiceNumber string        `json:"invoice_number"`
	Date          string        `json:"date"`
	Status        InvoiceStatus `json:"status"`

	Shop     ShopSettings     `json:"shop"`
	Customer CustomerIdentity `json:"customer"`

	Lines []InvoiceLine `json:"lines"`

	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxableAmount  decimal.Decimal `json:"taxable_amount"`
	Tax            []TaxComponent  `json:"tax"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	GrandTotal     decimal.Decimal `json:"grand_total"`

	Payments   []Payment       `json:"payments"`
	TotalPaid  decimal.Decimal `json:"total_paid"`
	Settlement Settlement      `json:"settlement"`
}

// FileName is the download name the renderer should save the document under.
func (b *Breakdown) FileName() string {
	number := b.InvoiceNumber
	if number == "" {
		number = "unknown"
	}
	return fmt.Sprintf("Invoice_%s.pdf", number)
}

// Compose runs the full pipeline — per-line normalization, tax allocation,
// settlement reconciliation — and assembles the breakdown. It is pure:
// identical inputs always produce an identical Breakdown, and no input is
// mutated.
//
// Fatal problems (unknown tax type, discount exceeding subtotal, negative
// quantity) abort with no partial result. A mismatch between the recorded
// payment rows and the invoice's paid amount is returned as a
// ReconciliationWarning; the invoice figure is authoritative and composition
// proceeds on it.
func Compose(in ComposeInput) (*Breakdown, []ReconciliationWarning, error) {
	inv := in.Invoice

	lines := make([]InvoiceLine, 0, len(inv.Items))
	for i, raw := range inv.Items {
		line := NormalizeLine(raw)
		if line.Qty < 0 {
			return nil, nil, &ValidationError{
				Field:   fmt.Sprintf("items[%d].qty", i),
				Message: "quantity cannot be negative",
			}
		}
		lines = append(lines, line)
	}

	// Absent tax configuration takes the intra-state default; only an
	// explicit unknown value is rejected.
	taxType := inv.TaxType
	if taxType == "" {
		taxType = TaxCGSTSGST
	}
	gstPercent := inv.GSTPercent.Decimal
	if !inv.GSTPercent.Valid || gstPercent.IsZero() {
		gstPercent = defaultGSTPercent
	}

	tax, err := AllocateTax(TaxFigures{
		VATTotal:   inv.VATTotal,
		GSTPercent: gstPercent,
		TaxType:    taxType,
		CGSTTotal:  inv.CGSTTotal,
		SGSTTotal:  inv.SGSTTotal,
		IGSTTotal:  inv.IGSTTotal,
	})
	if err != nil {
		return nil, nil, err
	}

	summary, err := Reconcile(inv.Subtotal, inv.DiscountAmount, inv.VATTotal, inv.PaidAmount)
	if err != nil {
		return nil, nil, err
	}

	var warnings []ReconciliationWarning
	recorded := decimal.Zero
	for _, p := range in.Payments {
		recorded = recorded.Add(p.Amount.OrZero())
	}
	if recorded.Sub(inv.PaidAmount).Abs().GreaterThan(settleTolerance) {
		warnings = append(warnings, ReconciliationWarning{
			PaymentsTotal: recorded,
			PaidAmount:    inv.PaidAmount,
		})
	}

	return &Breakdown{
		InvoiceNumber:  inv.InvoiceNumber,
		Date:           inv.Date,
		Status:         inv.Status,
		Shop:           in.ShopSettings.Defaulted(),
		Customer:       resolveCustomer(inv, in.CustomerDetails),
		Lines:          lines,
		Subtotal:       inv.Subtotal,
		DiscountAmount: inv.DiscountAmount,
		TaxableAmount:  summary.TaxableAmount,
		Tax:            tax,
		TotalTax:       inv.VATTotal,
		GrandTotal:     summary.GrandTotal,
		Payments:       append([]Payment(nil), in.Payments...),
		TotalPaid:      inv.PaidAmount,
		Settlement:     summary.Settlement,
	}, warnings, nil
}

// resolveCustomer builds the bill-to identity. Saved customers take the flat
// invoice fields with the nested party record winning on conflict; walk-ins
// take the walk_in fields with a generic fallback name.
func resolveCustomer(inv Invoice, details *CustomerDetails) CustomerIdentity {
	if inv.CustomerType == CustomerSaved {
		c := CustomerIdentity{
			Name:    inv.CustomerName,
			Phone:   inv.CustomerPhone,
			Address: inv.CustomerAddress,
			GSTIN:   inv.CustomerGSTIN,
		}
		if c.Name == "" {
			c.Name = "N/A"
		}
		if details != nil {
			if details.Phone != "" {
				c.Phone = details.Phone
			}
			if details.Address != "" {
				c.Address = details.Address
			}
			if details.GSTIN != "" {
				c.GSTIN = details.GSTIN
			}
		}
		return c
	}

	name := inv.WalkInName
	if name == "" {
		name = "Walk-in Customer"
	}
	return CustomerIdentity{Name: name, Phone: inv.WalkInPhone}
}
