package core

import "github.com/shopspring/decimal"

var two = decimal.NewFromInt(2)

// TaxComponent is one line of the tax breakdown shown on the invoice.
type TaxComponent struct {
	Label       string          `json:"label"`
	RatePercent decimal.Decimal `json:"rate_percent"`
	Amount      decimal.Decimal `json:"amount"`
}

// TaxFigures carries the invoice-level inputs to tax allocation. The three
// precomputed totals are optional; when absent the split is derived from
// VATTotal.
type TaxFigures struct {
	VATTotal   decimal.Decimal
	GSTPercent decimal.Decimal
	TaxType    TaxType
	CGSTTotal  Amount
	SGSTTotal  Amount
	IGSTTotal  Amount
}

// AllocateTax splits the invoice tax total into its displayed components.
//
// cgst_sgst yields CGST then SGST at half the GST rate each. When only one
// half is derived, it is computed as the remainder so the two always sum to
// VATTotal exactly — halving each side independently can drift by a
// thousandth on odd totals. igst yields a single full-rate component.
// An unrecognized tax type is a ConfigurationError; there is no silent
// fallback mode.
func AllocateTax(f TaxFigures) ([]TaxComponent, error) {
	switch f.TaxType {
	case TaxCGSTSGST:
		halfRate := f.GSTPercent.Div(two)
		var cgst, sgst decimal.Decimal
		switch {
		case f.CGSTTotal.Valid && f.SGSTTotal.Valid:
			cgst = f.CGSTTotal.Decimal
			sgst = f.SGSTTotal.Decimal
		case f.CGSTTotal.Valid:
			cgst = f.CGSTTotal.Decimal
			sgst = f.VATTotal.Sub(cgst)
		case f.SGSTTotal.Valid:
			sgst = f.SGSTTotal.Decimal
			cgst = f.VATTotal.Sub(sgst)
		default:
			cgst = f.VATTotal.Div(two)
			sgst = f.VATTotal.Sub(cgst)
		}
		return []TaxComponent{
			{Label: "CGST", RatePercent: halfRate, Amount: cgst},
			{Label: "SGST", RatePercent: halfRate, Amount: sgst},
		}, nil

	case TaxIGST:
		return []TaxComponent{
			{Label: "IGST", RatePercent: f.GSTPercent, Amount: f.IGSTTotal.Or(f.VATTotal)},
		}, nil

	default:
		return nil, &ConfigurationError{Field: "tax_type", Value: string(f.TaxType)}
	}
}
