package core_test

import (
	"testing"

	"github.com/imanaswer/GOLDY/internal/core"
	"github.com/shopspring/decimal"
)

func amt(s string) core.Amount {
	return core.NewAmount(decimal.RequireFromString(s))
}

func TestNormalizeLine_Weights(t *testing.T) {
	tests := []struct {
		name      string
		raw       core.RawInvoiceLine
		wantGross string
		wantNet   string
	}{
		{
			name:      "net derived from gross minus stone",
			raw:       core.RawInvoiceLine{GrossWeight: amt("5.5"), StoneWeight: amt("0.8")},
			wantGross: "5.5",
			wantNet:   "4.7",
		},
		{
			name:      "explicit net wins over derivation",
			raw:       core.RawInvoiceLine{GrossWeight: amt("10"), StoneWeight: amt("2"), NetGoldWeight: amt("7.5")},
			wantGross: "10",
			wantNet:   "7.5",
		},
		{
			name:      "explicit zero net is kept verbatim",
			raw:       core.RawInvoiceLine{GrossWeight: amt("3"), NetGoldWeight: amt("0")},
			wantGross: "3",
			wantNet:   "0",
		},
		{
			name:      "stone heavier than gross clamps derived net to zero",
			raw:       core.RawInvoiceLine{GrossWeight: amt("1"), StoneWeight: amt("2.5")},
			wantGross: "1",
			wantNet:   "0",
		},
		{
			name:      "legacy weight used when gross absent",
			raw:       core.RawInvoiceLine{Weight: amt("8.25")},
			wantGross: "8.25",
			wantNet:   "8.25",
		},
		{
			name:      "gross wins over legacy weight",
			raw:       core.RawInvoiceLine{GrossWeight: amt("6"), Weight: amt("9")},
			wantGross: "6",
			wantNet:   "6",
		},
		{
			name:      "everything absent",
			raw:       core.RawInvoiceLine{},
			wantGross: "0",
			wantNet:   "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := core.NormalizeLine(tt.raw)
			if line.GrossWeight.String() != tt.wantGross {
				t.Errorf("gross = %s, want %s", line.GrossWeight, tt.wantGross)
			}
			if line.NetGoldWeight.String() != tt.wantNet {
				t.Errorf("net = %s, want %s", line.NetGoldWeight, tt.wantNet)
			}
		})
	}
}

func TestNormalizeLine_PurityDefault(t *testing.T) {
	tests := []struct {
		name   string
		purity core.Amount
		want   int
	}{
		{"absent defaults to 916", core.Amount{}, 916},
		{"zero defaults to 916", amt("0"), 916},
		{"explicit 750 kept", amt("750"), 750},
		{"explicit 999 kept", amt("999"), 999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := core.NormalizeLine(core.RawInvoiceLine{Purity: tt.purity})
			if line.Purity != tt.want {
				t.Errorf("purity = %d, want %d", line.Purity, tt.want)
			}
		})
	}
}

func TestNormalizeLine_AbsentChargesBecomeZero(t *testing.T) {
	line := core.NormalizeLine(core.RawInvoiceLine{Description: "Plain chain"})
	for name, d := range map[string]decimal.Decimal{
		"metal_rate":      line.MetalRate,
		"gold_value":      line.GoldValue,
		"making_value":    line.MakingValue,
		"stone_charges":   line.StoneCharges,
		"wastage_charges": line.WastageCharges,
		"item_discount":   line.ItemDiscount,
		"vat_amount":      line.VATAmount,
		"line_total":      line.LineTotal,
	} {
		if !d.IsZero() {
			t.Errorf("%s = %s, want 0", name, d)
		}
	}
	if line.Qty != 0 {
		t.Errorf("qty = %d, want 0", line.Qty)
	}
	if line.Description != "Plain chain" {
		t.Errorf("description lost: %q", line.Description)
	}
}

func TestNormalizeLine_DoesNotMutateInput(t *testing.T) {
	raw := core.RawInvoiceLine{GrossWeight: amt("5"), StoneWeight: amt("1")}
	_ = core.NormalizeLine(raw)
	if !raw.GrossWeight.Decimal.Equal(decimal.NewFromInt(5)) {
		t.Error("input gross weight mutated")
	}
	if raw.NetGoldWeight.Valid {
		t.Error("input net gold weight mutated")
	}
}
