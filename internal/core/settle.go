package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// settleTolerance absorbs sub-thousandth rounding when classifying a balance.
// Currency is displayed to 3 decimal places, so anything within 0.001 of zero
// is a settled invoice, not a rounding artifact shown as due.
var settleTolerance = decimal.New(1, -3)

// SettlementState classifies the remaining balance of an invoice.
type SettlementState string

const (
	SettlementDue      SettlementState = "due"
	SettlementSettled  SettlementState = "settled"
	SettlementOverpaid SettlementState = "overpaid"
)

// Settlement is the classified balance: Amount is always non-negative and
// State carries the direction.
type Settlement struct {
	State  SettlementState `json:"state"`
	Amount decimal.Decimal `json:"amount"`
}

// SettlementSummary is the reconciled money flow of one invoice.
// Balance keeps its sign (positive = customer owes, negative = shop owes
// change); Settlement is the display classification of the same figure.
type SettlementSummary struct {
	TaxableAmount decimal.Decimal `json:"taxable_amount"`
	GrandTotal    decimal.Decimal `json:"grand_total"`
	Balance       decimal.Decimal `json:"balance"`
	Settlement    Settlement      `json:"settlement"`
}

// Reconcile derives the taxable amount, grand total, and balance state from
// the invoice-level figures.
//
//	taxable = subtotal − discount   (negative → ValidationError)
//	grand   = taxable + vat
//	balance = grand − paid
func Reconcile(subtotal, discountAmount, vatTotal, paidAmount decimal.Decimal) (SettlementSummary, error) {
	taxable := subtotal.Sub(discountAmount)
	if taxable.IsNegative() {
		return SettlementSummary{}, &ValidationError{
			Field:   "discount_amount",
			Message: fmt.Sprintf("discount %s exceeds subtotal %s", discountAmount.StringFixed(3), subtotal.StringFixed(3)),
		}
	}

	grand := taxable.Add(vatTotal)
	balance := grand.Sub(paidAmount)

	var settlement Settlement
	switch {
	case balance.Abs().LessThanOrEqual(settleTolerance):
		settlement = Settlement{State: SettlementSettled, Amount: decimal.Zero}
	case balance.IsPositive():
		settlement = Settlement{State: SettlementDue, Amount: balance}
	default:
		settlement = Settlement{State: SettlementOverpaid, Amount: balance.Neg()}
	}

	return SettlementSummary{
		TaxableAmount: taxable,
		GrandTotal:    grand,
		Balance:       balance,
		Settlement:    settlement,
	}, nil
}
