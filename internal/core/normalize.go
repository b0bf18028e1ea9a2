package core

import "github.com/shopspring/decimal"

// NormalizeLine turns a raw snapshot line into a fully concrete InvoiceLine.
// Defaulting order per field:
//
//	gross weight:    gross_weight, then legacy weight, then 0
//	net gold weight: net_gold_weight verbatim when present,
//	                 else gross − stone clamped to ≥ 0
//	purity:          purity when non-zero, else 916
//	all other numerics: 0 when absent
//
// The input is left untouched; NormalizeLine never fails.
func NormalizeLine(raw RawInvoiceLine) InvoiceLine {
	gross := raw.GrossWeight.Or(raw.Weight.OrZero())
	stone := raw.StoneWeight.OrZero()

	var net decimal.Decimal
	if raw.NetGoldWeight.Valid {
		net = raw.NetGoldWeight.Decimal
	} else {
		net = gross.Sub(stone)
		if net.IsNegative() {
			net = decimal.Zero
		}
	}

	purity := defaultPurity
	if raw.Purity.Valid && !raw.Purity.Decimal.IsZero() {
		purity = int(raw.Purity.Decimal.IntPart())
	}

	return InvoiceLine{
		Description:    raw.Description,
		Qty:            raw.Qty.OrZero().IntPart(),
		GrossWeight:    gross,
		StoneWeight:    stone,
		NetGoldWeight:  net,
		Purity:         purity,
		MetalRate:      raw.MetalRate.OrZero(),
		GoldValue:      raw.GoldValue.OrZero(),
		MakingValue:    raw.MakingValue.OrZero(),
		StoneCharges:   raw.StoneCharges.OrZero(),
		WastageCharges: raw.WastageCharges.OrZero(),
		ItemDiscount:   raw.ItemDiscount.OrZero(),
		VATAmount:      raw.VATAmount.OrZero(),
		LineTotal:      raw.LineTotal.OrZero(),
	}
}
