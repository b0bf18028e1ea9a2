package core_test

import (
	"testing"

	"github.com/imanaswer/GOLDY/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInvoice() core.Invoice {
	return core.Invoice{
		ID:             "inv-1",
		InvoiceNumber:  "INV-000042",
		Date:           "2026-03-15",
		Status:         core.InvoiceStatusFinalized,
		TaxType:        core.TaxCGSTSGST,
		GSTPercent:     amt("5"),
		Subtotal:       dec("100"),
		DiscountAmount: dec("10"),
		VATTotal:       dec("4.5"),
		GrandTotal:     dec("94.5"),
		PaidAmount:     dec("94.5"),
		CustomerType:   core.CustomerWalkIn,
		WalkInName:     "Asha",
		Items: []core.RawInvoiceLine{
			{Description: "Gold ring", Qty: amt("1"), GrossWeight: amt("5.5"), StoneWeight: amt("0.8"), MetalRate: amt("18.5")},
		},
	}
}

func TestCompose_FullyPaidInvoice(t *testing.T) {
	b, warnings, err := core.Compose(core.ComposeInput{
		Invoice:  sampleInvoice(),
		Payments: []core.Payment{{Mode: "cash", Amount: amt("94.5")}},
	})
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Empty(t, warnings)

	assert.Equal(t, "INV-000042", b.InvoiceNumber)
	assert.Equal(t, "90", b.TaxableAmount.String())
	assert.Equal(t, "94.5", b.GrandTotal.String())
	assert.Equal(t, core.SettlementSettled, b.Settlement.State)

	require.Len(t, b.Tax, 2)
	assert.Equal(t, "CGST", b.Tax[0].Label)
	assert.Equal(t, "2.25", b.Tax[0].Amount.String())
	assert.Equal(t, "2.5", b.Tax[0].RatePercent.String())
	assert.Equal(t, "SGST", b.Tax[1].Label)
	assert.Equal(t, "2.25", b.Tax[1].Amount.String())

	require.Len(t, b.Lines, 1)
	assert.Equal(t, "4.7", b.Lines[0].NetGoldWeight.String())
	assert.Equal(t, 916, b.Lines[0].Purity)

	assert.Equal(t, "Asha", b.Customer.Name)
}

func TestCompose_IGSTSingleComponent(t *testing.T) {
	inv := sampleInvoice()
	inv.TaxType = core.TaxIGST

	b, _, err := core.Compose(core.ComposeInput{Invoice: inv})
	require.NoError(t, err)
	require.Len(t, b.Tax, 1)
	assert.Equal(t, "IGST", b.Tax[0].Label)
	assert.Equal(t, "4.5", b.Tax[0].Amount.String())
	assert.Equal(t, "5", b.Tax[0].RatePercent.String())
}

func TestCompose_DefaultsWhenConfigAbsent(t *testing.T) {
	inv := sampleInvoice()
	inv.TaxType = ""                // absent → intra-state split
	inv.GSTPercent = core.Amount{}  // absent → 5%
	inv.PaidAmount = decimal.Zero

	b, _, err := core.Compose(core.ComposeInput{Invoice: inv})
	require.NoError(t, err)
	require.Len(t, b.Tax, 2)
	assert.Equal(t, "2.5", b.Tax[0].RatePercent.String())
	assert.Equal(t, core.SettlementDue, b.Settlement.State)
	assert.Equal(t, "94.5", b.Settlement.Amount.String())
}

func TestCompose_UnknownTaxTypeAborts(t *testing.T) {
	inv := sampleInvoice()
	inv.TaxType = "service_tax"

	b, warnings, err := core.Compose(core.ComposeInput{Invoice: inv})
	require.Error(t, err)
	assert.Nil(t, b)
	assert.Nil(t, warnings)
	assert.IsType(t, &core.ConfigurationError{}, err)
}

func TestCompose_DiscountExceedingSubtotalAborts(t *testing.T) {
	inv := sampleInvoice()
	inv.DiscountAmount = dec("150")

	b, _, err := core.Compose(core.ComposeInput{Invoice: inv})
	require.Error(t, err)
	assert.Nil(t, b)
	assert.IsType(t, &core.ValidationError{}, err)
}

func TestCompose_NegativeQuantityAborts(t *testing.T) {
	inv := sampleInvoice()
	inv.Items = append(inv.Items, core.RawInvoiceLine{Description: "Bad row", Qty: amt("-2")})

	b, _, err := core.Compose(core.ComposeInput{Invoice: inv})
	require.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "items[1].qty")
}

func TestCompose_PaymentMismatchWarnsButProceeds(t *testing.T) {
	b, warnings, err := core.Compose(core.ComposeInput{
		Invoice:  sampleInvoice(),
		Payments: []core.Payment{{Mode: "cash", Amount: amt("50")}},
	})
	require.NoError(t, err)
	require.NotNil(t, b)
	require.Len(t, warnings, 1)
	assert.Equal(t, "50", warnings[0].PaymentsTotal.String())
	assert.Equal(t, "94.5", warnings[0].PaidAmount.String())

	// The invoice figure stays authoritative.
	assert.Equal(t, "94.5", b.TotalPaid.String())
	assert.Equal(t, core.SettlementSettled, b.Settlement.State)
}

func TestCompose_SavedCustomerDetailsPrecedence(t *testing.T) {
	inv := sampleInvoice()
	inv.CustomerType = core.CustomerSaved
	inv.CustomerName = "Header Name"
	inv.CustomerPhone = "111"
	inv.CustomerAddress = "Old Street"

	b, _, err := core.Compose(core.ComposeInput{
		Invoice: inv,
		CustomerDetails: &core.CustomerDetails{
			Name:  "Nested Name",
			Phone: "222",
			GSTIN: "GST-XYZ",
		},
	})
	require.NoError(t, err)

	// Nested record wins on phone/address/gstin; the header name stands.
	assert.Equal(t, "Header Name", b.Customer.Name)
	assert.Equal(t, "222", b.Customer.Phone)
	assert.Equal(t, "Old Street", b.Customer.Address)
	assert.Equal(t, "GST-XYZ", b.Customer.GSTIN)
}

func TestCompose_WalkInFallbackName(t *testing.T) {
	inv := sampleInvoice()
	inv.WalkInName = ""

	b, _, err := core.Compose(core.ComposeInput{Invoice: inv})
	require.NoError(t, err)
	assert.Equal(t, "Walk-in Customer", b.Customer.Name)
}

func TestCompose_ShopDefaultsApplied(t *testing.T) {
	b, _, err := core.Compose(core.ComposeInput{Invoice: sampleInvoice()})
	require.NoError(t, err)
	assert.Equal(t, "Gold Jewellery ERP", b.Shop.ShopName)
	assert.NotEmpty(t, b.Shop.Phone)
	assert.NotEmpty(t, b.Shop.TermsAndConditions)
}

func TestCompose_Deterministic(t *testing.T) {
	in := core.ComposeInput{
		Invoice:  sampleInvoice(),
		Payments: []core.Payment{{Mode: "cash", Amount: amt("94.5")}},
	}
	first, _, err := core.Compose(in)
	require.NoError(t, err)
	second, _, err := core.Compose(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBreakdown_FileName(t *testing.T) {
	b := &core.Breakdown{InvoiceNumber: "INV-000007"}
	assert.Equal(t, "Invoice_INV-000007.pdf", b.FileName())

	b.InvoiceNumber = ""
	assert.Equal(t, "Invoice_unknown.pdf", b.FileName())
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "94.500", core.FormatCurrency(dec("94.5")))
	assert.Equal(t, "4.700", core.FormatWeight(dec("4.7")))
	assert.Equal(t, "2.50", core.FormatPercent(dec("2.5")))
}
