package core_test

import (
	"context"
	"os"
	"sync"
	"testing"

	"github.com/imanaswer/GOLDY/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE payments, invoice_items, invoices, transactions, jobcards, parties, accounts, shop_settings CASCADE;
		UPDATE invoice_sequences SET last_number = 0 WHERE id = 1;
		INSERT INTO invoice_sequences (id, last_number) VALUES (1, 0) ON CONFLICT (id) DO NOTHING;

		INSERT INTO accounts (id, name, account_type, balance) VALUES
		('cash_account', 'Cash', 'cash', 0),
		('bank_account', 'Bank', 'bank', 0);
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

func draftWithOneRing() core.InvoiceDraft {
	return core.InvoiceDraft{
		Date:         "2026-03-15",
		CustomerType: core.CustomerWalkIn,
		WalkInName:   "Asha",
		Items: []core.RawInvoiceLine{{
			Description: "Gold ring",
			Qty:         amt("1"),
			GrossWeight: amt("5.5"),
			StoneWeight: amt("0.8"),
			MetalRate:   amt("20"),
			MakingValue: amt("6"),
		}},
	}
}

func TestInvoiceService_CreatePricesLines(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, draftWithOneRing())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	// net 4.7 × rate 20 = 94 gold value, +6 making = 100 subtotal.
	if inv.Subtotal.String() != "100" {
		t.Errorf("subtotal = %s, want 100", inv.Subtotal)
	}
	// 5% default GST on 100.
	if inv.VATTotal.String() != "5" {
		t.Errorf("vat_total = %s, want 5", inv.VATTotal)
	}
	if inv.GrandTotal.String() != "105" {
		t.Errorf("grand_total = %s, want 105", inv.GrandTotal)
	}
	if inv.Status != core.InvoiceStatusDraft {
		t.Errorf("status = %s, want draft", inv.Status)
	}
	if inv.InvoiceNumber != "" {
		t.Errorf("draft should have no invoice number, got %s", inv.InvoiceNumber)
	}
	if !inv.CGSTTotal.Valid || inv.CGSTTotal.Decimal.String() != "2.5" {
		t.Errorf("cgst_total = %v, want 2.5", inv.CGSTTotal)
	}
	if len(inv.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(inv.Items))
	}
	if inv.Items[0].NetGoldWeight.OrZero().String() != "4.7" {
		t.Errorf("net weight = %s, want 4.7", inv.Items[0].NetGoldWeight.OrZero())
	}
}

func TestInvoiceService_ConcurrentFinalizeNumbering(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 10; i++ {
		inv, err := svc.CreateInvoice(ctx, draftWithOneRing())
		if err != nil {
			t.Fatalf("CreateInvoice failed: %v", err)
		}
		ids = append(ids, inv.ID)
	}

	var wg sync.WaitGroup
	errCh := make(chan error, len(ids))
	for _, id := range ids {
		wg.Add(1)
		go func(invoiceID string) {
			defer wg.Done()
			if _, err := svc.FinalizeInvoice(ctx, invoiceID); err != nil {
				errCh <- err
			}
		}(id)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Errorf("concurrent finalize error: %v", err)
	}

	var count int
	err := pool.QueryRow(ctx, "SELECT count(DISTINCT invoice_number) FROM invoices WHERE status = 'finalized'").Scan(&count)
	if err != nil {
		t.Fatalf("failed to count invoice numbers: %v", err)
	}
	if count != 10 {
		t.Errorf("expected 10 unique invoice numbers, got %d", count)
	}
}

func TestInvoiceService_PaymentLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewInvoiceService(pool)
	ctx := context.Background()

	inv, err := svc.CreateInvoice(ctx, draftWithOneRing())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}

	// Payments are rejected until the invoice is finalized.
	if _, err := svc.AddPayment(ctx, inv.ID, decimal.NewFromInt(50), "cash", "cash_account", "2026-03-15", ""); err == nil {
		t.Fatal("expected error adding payment to draft invoice")
	}

	if inv, err = svc.FinalizeInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("FinalizeInvoice failed: %v", err)
	}
	if inv.InvoiceNumber != "INV-000001" {
		t.Errorf("invoice number = %s, want INV-000001", inv.InvoiceNumber)
	}

	inv, err = svc.AddPayment(ctx, inv.ID, decimal.NewFromInt(50), "cash", "cash_account", "2026-03-15", "")
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if inv.PaymentStatus != core.PaymentStatusPartial {
		t.Errorf("payment_status = %s, want partial", inv.PaymentStatus)
	}
	if inv.BalanceDue.String() != "55" {
		t.Errorf("balance_due = %s, want 55", inv.BalanceDue)
	}

	inv, err = svc.AddPayment(ctx, inv.ID, decimal.NewFromInt(55), "bank", "bank_account", "2026-03-16", "")
	if err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}
	if inv.PaymentStatus != core.PaymentStatusPaid {
		t.Errorf("payment_status = %s, want paid", inv.PaymentStatus)
	}
	if inv.PaidAt == nil {
		t.Error("paid_at should be set once fully paid")
	}

	// Both receipts mirrored into the ledger as credits.
	var ledgerTotal decimal.Decimal
	err = pool.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE reference_type = 'invoice' AND reference_id = $1",
		inv.ID).Scan(&ledgerTotal)
	if err != nil {
		t.Fatalf("failed to sum ledger: %v", err)
	}
	if ledgerTotal.String() != "105" {
		t.Errorf("ledger total = %s, want 105", ledgerTotal)
	}

	// Account balances moved with the postings: they must match the ledger,
	// not lag behind it.
	var cashBalance, bankBalance decimal.Decimal
	if err := pool.QueryRow(ctx, "SELECT balance FROM accounts WHERE id = 'cash_account'").Scan(&cashBalance); err != nil {
		t.Fatalf("failed to fetch cash balance: %v", err)
	}
	if cashBalance.String() != "50" {
		t.Errorf("cash balance = %s, want 50", cashBalance)
	}
	if err := pool.QueryRow(ctx, "SELECT balance FROM accounts WHERE id = 'bank_account'").Scan(&bankBalance); err != nil {
		t.Fatalf("failed to fetch bank balance: %v", err)
	}
	if bankBalance.String() != "55" {
		t.Errorf("bank balance = %s, want 55", bankBalance)
	}

	// Full details feed the composition engine directly.
	full, details, payments, err := svc.GetInvoiceFullDetails(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvoiceFullDetails failed: %v", err)
	}
	if details != nil {
		t.Error("walk-in invoice should carry no nested customer details")
	}
	if len(payments) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(payments))
	}

	b, warnings, err := core.Compose(core.ComposeInput{Invoice: *full, Payments: payments})
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if b.Settlement.State != core.SettlementSettled {
		t.Errorf("settlement state = %s, want settled", b.Settlement.State)
	}
	if b.FileName() != "Invoice_INV-000001.pdf" {
		t.Errorf("file name = %s", b.FileName())
	}
}

func TestJobCardService_LifecycleAndConversion(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	jobCards := core.NewJobCardService(pool)
	invoices := core.NewInvoiceService(pool)
	ctx := context.Background()

	jc, err := jobCards.CreateJobCard(ctx, core.JobCardDraft{
		CustomerName: "Ravi",
		Description:  "Resize bangle",
		GrossWeight:  decimal.RequireFromString("12"),
		StoneWeight:  decimal.RequireFromString("2"),
		MetalRate:    decimal.NewFromInt(10),
		MakingCharge: decimal.NewFromInt(15),
	})
	if err != nil {
		t.Fatalf("CreateJobCard failed: %v", err)
	}
	if jc.Status != core.JobCardPending {
		t.Errorf("status = %s, want pending", jc.Status)
	}
	// (12−2)×10 + 15
	if jc.EstimatedAmount.String() != "115" {
		t.Errorf("estimated = %s, want 115", jc.EstimatedAmount)
	}

	// Cannot convert before delivery.
	if _, err := jobCards.ConvertToInvoice(ctx, jc.ID, invoices); err == nil {
		t.Fatal("expected error converting a pending job card")
	}

	// Backwards transitions are rejected.
	if jc, err = jobCards.UpdateStatus(ctx, jc.ID, core.JobCardCompleted); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if jc.CompletedAt == nil {
		t.Error("completed_at should be set")
	}
	if _, err := jobCards.UpdateStatus(ctx, jc.ID, core.JobCardPending); err == nil {
		t.Fatal("expected error moving completed back to pending")
	}

	if jc, err = jobCards.UpdateStatus(ctx, jc.ID, core.JobCardDelivered); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if jc.DeliveredAt == nil {
		t.Error("delivered_at should be set")
	}

	inv, err := jobCards.ConvertToInvoice(ctx, jc.ID, invoices)
	if err != nil {
		t.Fatalf("ConvertToInvoice failed: %v", err)
	}
	if inv.Status != core.InvoiceStatusDraft {
		t.Errorf("converted invoice status = %s, want draft", inv.Status)
	}
	if inv.Subtotal.String() != "115" {
		t.Errorf("converted subtotal = %s, want 115", inv.Subtotal)
	}

	// Second conversion is rejected.
	if _, err := jobCards.ConvertToInvoice(ctx, jc.ID, invoices); err == nil {
		t.Fatal("expected error converting an already billed job card")
	}
}

func TestTransactionService_BalancesAndSummary(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewTransactionService(pool)
	ctx := context.Background()

	_, err := svc.RecordTransaction(ctx, "cash_account", core.TransactionCredit,
		decimal.NewFromInt(200), "Opening sale", core.ReferenceManual, "", "2026-03-15", "")
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}
	_, err = svc.RecordTransaction(ctx, "cash_account", core.TransactionDebit,
		decimal.NewFromInt(80), "Vendor payout", core.ReferencePurchase, "", "2026-03-15", "")
	if err != nil {
		t.Fatalf("RecordTransaction failed: %v", err)
	}

	accounts, err := svc.GetAccounts(ctx)
	if err != nil {
		t.Fatalf("GetAccounts failed: %v", err)
	}
	for _, a := range accounts {
		if a.ID == "cash_account" && a.Balance.String() != "120" {
			t.Errorf("cash balance = %s, want 120", a.Balance)
		}
	}

	summary, err := svc.GetSummary(ctx, core.TransactionFilter{AccountID: "cash_account"})
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.TotalCredit.String() != "200" || summary.TotalDebit.String() != "80" {
		t.Errorf("summary = credit %s / debit %s, want 200 / 80", summary.TotalCredit, summary.TotalDebit)
	}
	if summary.Net.String() != "120" {
		t.Errorf("net = %s, want 120", summary.Net)
	}
}

func TestClosingService_DailySnapshot(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	invoices := core.NewInvoiceService(pool)
	closings := core.NewClosingService(pool)
	ctx := context.Background()

	inv, err := invoices.CreateInvoice(ctx, draftWithOneRing())
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if inv, err = invoices.FinalizeInvoice(ctx, inv.ID); err != nil {
		t.Fatalf("FinalizeInvoice failed: %v", err)
	}
	today := inv.FinalizedAt.Format("2006-01-02")
	if _, err = invoices.AddPayment(ctx, inv.ID, decimal.NewFromInt(60), "cash", "cash_account", today, ""); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	closing, err := closings.GetDailyClosing(ctx, today)
	if err != nil {
		t.Fatalf("GetDailyClosing failed: %v", err)
	}
	if closing.InvoiceCount != 1 {
		t.Errorf("invoice count = %d, want 1", closing.InvoiceCount)
	}
	if closing.SalesTotal.String() != "105" {
		t.Errorf("sales total = %s, want 105", closing.SalesTotal)
	}
	if closing.CollectedByMode["cash"].String() != "60" {
		t.Errorf("cash collected = %s, want 60", closing.CollectedByMode["cash"])
	}
	if closing.OutstandingTotal.String() != "45" {
		t.Errorf("outstanding = %s, want 45", closing.OutstandingTotal)
	}
}

func TestSettingsService_DefaultsAndUpsert(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewSettingsService(pool)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	if err != nil {
		t.Fatalf("GetSettings failed: %v", err)
	}
	if settings.ShopName != "Gold Jewellery ERP" {
		t.Errorf("default shop name = %s", settings.ShopName)
	}

	updated, err := svc.UpdateSettings(ctx, core.ShopSettings{ShopName: "Lakshmi Jewellers", GSTIN: "GST-001"})
	if err != nil {
		t.Fatalf("UpdateSettings failed: %v", err)
	}
	if updated.ShopName != "Lakshmi Jewellers" {
		t.Errorf("shop name = %s, want Lakshmi Jewellers", updated.ShopName)
	}
	// Untouched fields still read with placeholders.
	if updated.Phone == "" {
		t.Error("phone should fall back to a placeholder")
	}
}

func TestPartyService_CreateAndFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewPartyService(pool)
	ctx := context.Background()

	if _, err := svc.CreateParty(ctx, "", "", "", core.PartyCustomer, "", ""); err == nil {
		t.Fatal("expected error for empty party name")
	}

	customer, err := svc.CreateParty(ctx, "Meera", "999", "MG Road", core.PartyCustomer, "GST-MEERA", "")
	if err != nil {
		t.Fatalf("CreateParty failed: %v", err)
	}
	if _, err = svc.CreateParty(ctx, "Bullion Traders", "888", "", core.PartyVendor, "", ""); err != nil {
		t.Fatalf("CreateParty failed: %v", err)
	}

	customerType := core.PartyCustomer
	parties, err := svc.GetParties(ctx, &customerType)
	if err != nil {
		t.Fatalf("GetParties failed: %v", err)
	}
	if len(parties) != 1 || parties[0].ID != customer.ID {
		t.Errorf("customer filter returned %d parties", len(parties))
	}

	// Saved-customer invoices denormalize the party onto the header.
	invoices := core.NewInvoiceService(pool)
	draft := draftWithOneRing()
	draft.CustomerType = core.CustomerSaved
	draft.CustomerID = customer.ID
	draft.WalkInName = ""

	inv, err := invoices.CreateInvoice(ctx, draft)
	if err != nil {
		t.Fatalf("CreateInvoice failed: %v", err)
	}
	if inv.CustomerName != "Meera" {
		t.Errorf("customer name = %s, want Meera", inv.CustomerName)
	}
	if inv.CustomerGSTIN != "GST-MEERA" {
		t.Errorf("customer gstin = %s", inv.CustomerGSTIN)
	}
}
