package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// InvoiceDraft is the input for creating a new draft invoice. Items are
// accepted in snapshot form so partially filled rows price the same way a
// legacy record would normalize.
type InvoiceDraft struct {
	Date           string
	InvoiceType    string
	TaxType        TaxType
	GSTPercent     decimal.Decimal // zero means the 5% default
	DiscountAmount decimal.Decimal
	CustomerType   CustomerType
	CustomerID     string // party id, required for saved customers
	WalkInName     string
	WalkInPhone    string
	Notes          string
	Items          []RawInvoiceLine
}

// InvoiceService manages the invoice lifecycle: draft → finalized, payment
// recording, and the full-details snapshot the composition engine consumes.
type InvoiceService interface {
	CreateInvoice(ctx context.Context, draft InvoiceDraft) (*Invoice, error)
	FinalizeInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
	AddPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, mode, accountID, date, notes string) (*Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error)
	ListInvoices(ctx context.Context, status *InvoiceStatus, limit, offset int) ([]Invoice, error)
	GetInvoiceFullDetails(ctx context.Context, invoiceID string) (*Invoice, *CustomerDetails, []Payment, error)
}

type invoiceService struct {
	pool *pgxpool.Pool
}

func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

// priceLine completes a normalized line: gold value, display tax, and line
// total are derived from the weights and rate unless the caller supplied
// them explicitly. Line totals exclude tax; tax is applied at invoice level
// on the discounted subtotal.
func priceLine(raw RawInvoiceLine, gstPercent decimal.Decimal) InvoiceLine {
	line := NormalizeLine(raw)
	if !raw.GoldValue.Valid {
		line.GoldValue = line.NetGoldWeight.Mul(line.MetalRate).Round(CurrencyPlaces)
	}
	base := line.GoldValue.
		Add(line.MakingValue).
		Add(line.StoneCharges).
		Add(line.WastageCharges).
		Sub(line.ItemDiscount)
	if !raw.VATAmount.Valid {
		line.VATAmount = base.Mul(gstPercent).Div(hundred).Round(CurrencyPlaces)
	}
	if !raw.LineTotal.Valid {
		line.LineTotal = base
	}
	return line
}

func (s *invoiceService) CreateInvoice(ctx context.Context, draft InvoiceDraft) (*Invoice, error) {
	if len(draft.Items) == 0 {
		return nil, &ValidationError{Field: "items", Message: "invoice must have at least one item"}
	}
	if draft.Date == "" {
		return nil, &ValidationError{Field: "date", Message: "invoice date is required"}
	}
	if _, err := time.Parse("2006-01-02", draft.Date); err != nil {
		return nil, &ValidationError{Field: "date", Message: "must be YYYY-MM-DD"}
	}

	taxType := draft.TaxType
	if taxType == "" {
		taxType = TaxCGSTSGST
	}
	if taxType != TaxCGSTSGST && taxType != TaxIGST {
		return nil, &ConfigurationError{Field: "tax_type", Value: string(taxType)}
	}
	gstPercent := draft.GSTPercent
	if gstPercent.IsZero() {
		gstPercent = defaultGSTPercent
	}
	invoiceType := draft.InvoiceType
	if invoiceType == "" {
		invoiceType = "sales"
	}
	customerType := draft.CustomerType
	if customerType == "" {
		customerType = CustomerWalkIn
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Resolve the saved party so the header carries a flat denormalized copy
	// of the bill-to identity alongside the link.
	var customerID *string
	var customerName, customerPhone, customerAddress, customerGSTIN string
	if customerType == CustomerSaved {
		if draft.CustomerID == "" {
			return nil, &ValidationError{Field: "customer_id", Message: "required for saved customers"}
		}
		err = tx.QueryRow(ctx,
			"SELECT name, phone, address, gstin FROM parties WHERE id = $1",
			draft.CustomerID,
		).Scan(&customerName, &customerPhone, &customerAddress, &customerGSTIN)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("party %s not found", draft.CustomerID)
			}
			return nil, fmt.Errorf("failed to resolve party %s: %w", draft.CustomerID, err)
		}
		customerID = &draft.CustomerID
	}

	// Price every line, then derive the header money flow.
	lines := make([]InvoiceLine, 0, len(draft.Items))
	subtotal := decimal.Zero
	for i, raw := range draft.Items {
		line := priceLine(raw, gstPercent)
		if line.Qty < 0 {
			return nil, &ValidationError{Field: fmt.Sprintf("items[%d].qty", i), Message: "quantity cannot be negative"}
		}
		subtotal = subtotal.Add(line.LineTotal)
		lines = append(lines, line)
	}

	summary, err := Reconcile(subtotal, draft.DiscountAmount, decimal.Zero, decimal.Zero)
	if err != nil {
		return nil, err
	}
	vatTotal := summary.TaxableAmount.Mul(gstPercent).Div(hundred).Round(CurrencyPlaces)
	grandTotal := summary.TaxableAmount.Add(vatTotal)

	split, err := AllocateTax(TaxFigures{VATTotal: vatTotal, GSTPercent: gstPercent, TaxType: taxType})
	if err != nil {
		return nil, err
	}
	var cgst, sgst, igst *decimal.Decimal
	if taxType == TaxCGSTSGST {
		cgst, sgst = &split[0].Amount, &split[1].Amount
	} else {
		igst = &split[0].Amount
	}

	invoiceID := uuid.NewString()
	_, err = tx.Exec(ctx, `
		INSERT INTO invoices (
			id, date, status, invoice_type, tax_type, gst_percent,
			subtotal, discount_amount, vat_total, cgst_total, sgst_total, igst_total,
			grand_total, paid_amount, balance_due,
			customer_type, customer_id, customer_name, walk_in_name, walk_in_phone,
			payment_status, notes
		) VALUES (
			$1, $2, 'draft', $3, $4, $5,
			$6, $7, $8, $9, $10, $11,
			$12, 0, $12,
			$13, $14, $15, $16, $17,
			'unpaid', $18
		)
	`, invoiceID, draft.Date, invoiceType, string(taxType), gstPercent,
		subtotal, draft.DiscountAmount, vatTotal, cgst, sgst, igst,
		grandTotal,
		string(customerType), customerID, customerName, draft.WalkInName, draft.WalkInPhone,
		draft.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i, line := range lines {
		_, err = tx.Exec(ctx, `
			INSERT INTO invoice_items (
				invoice_id, line_number, description, qty,
				gross_weight, stone_weight, net_gold_weight, purity, metal_rate,
				gold_value, making_value, stone_charges, wastage_charges,
				item_discount, vat_amount, line_total
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		`, invoiceID, i+1, line.Description, line.Qty,
			line.GrossWeight, line.StoneWeight, line.NetGoldWeight, line.Purity, line.MetalRate,
			line.GoldValue, line.MakingValue, line.StoneCharges, line.WastageCharges,
			line.ItemDiscount, line.VATAmount, line.LineTotal)
		if err != nil {
			return nil, fmt.Errorf("failed to insert invoice item %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit invoice creation: %w", err)
	}

	return s.GetInvoice(ctx, invoiceID)
}

func (s *invoiceService) FinalizeInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, "SELECT status FROM invoices WHERE id = $1 FOR UPDATE", invoiceID).Scan(&status)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s not found", invoiceID)
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}
	if status != string(InvoiceStatusDraft) {
		return nil, fmt.Errorf("invoice %s cannot be finalized: status is %s (must be draft)", invoiceID, status)
	}

	// Gapless numbering: a single sequence row locked for the duration of
	// the finalize transaction.
	var lastNumber int64
	err = tx.QueryRow(ctx, "SELECT last_number FROM invoice_sequences WHERE id = 1 FOR UPDATE").Scan(&lastNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to lock invoice sequence: %w", err)
	}
	next := lastNumber + 1
	if _, err = tx.Exec(ctx, "UPDATE invoice_sequences SET last_number = $1 WHERE id = 1", next); err != nil {
		return nil, fmt.Errorf("failed to advance invoice sequence: %w", err)
	}
	invoiceNumber := fmt.Sprintf("INV-%06d", next)

	_, err = tx.Exec(ctx, `
		UPDATE invoices
		SET status = 'finalized', invoice_number = $1, finalized_at = NOW()
		WHERE id = $2
	`, invoiceNumber, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to finalize invoice %s: %w", invoiceID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit finalize: %w", err)
	}

	return s.GetInvoice(ctx, invoiceID)
}

func (s *invoiceService) AddPayment(ctx context.Context, invoiceID string, amount decimal.Decimal, mode, accountID, date, notes string) (*Invoice, error) {
	if amount.IsNegative() || amount.IsZero() {
		return nil, &ValidationError{Field: "amount", Message: "payment amount must be > 0"}
	}
	if mode == "" {
		mode = "cash"
	}
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var status, invoiceNumber string
	var subtotal, discount, vatTotal, paid decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT status, COALESCE(invoice_number, ''), subtotal, discount_amount, vat_total, paid_amount
		FROM invoices WHERE id = $1 FOR UPDATE
	`, invoiceID).Scan(&status, &invoiceNumber, &subtotal, &discount, &vatTotal, &paid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s not found", invoiceID)
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}
	if status != string(InvoiceStatusFinalized) {
		return nil, fmt.Errorf("invoice %s cannot accept payments: status is %s (must be finalized)", invoiceID, status)
	}

	newPaid := paid.Add(amount)
	summary, err := Reconcile(subtotal, discount, vatTotal, newPaid)
	if err != nil {
		return nil, err
	}

	paymentStatus := PaymentStatusPartial
	markPaid := false
	switch summary.Settlement.State {
	case SettlementSettled, SettlementOverpaid:
		paymentStatus = PaymentStatusPaid
		markPaid = true
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, mode, account_id, amount, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, uuid.NewString(), invoiceID, mode, accountID, amount, date, notes)
	if err != nil {
		return nil, fmt.Errorf("failed to insert payment: %w", err)
	}

	if markPaid {
		_, err = tx.Exec(ctx, `
			UPDATE invoices
			SET paid_amount = $1, balance_due = $2, payment_status = $3,
			    paid_at = COALESCE(paid_at, NOW())
			WHERE id = $4
		`, newPaid, summary.Balance, string(paymentStatus), invoiceID)
	} else {
		_, err = tx.Exec(ctx, `
			UPDATE invoices
			SET paid_amount = $1, balance_due = $2, payment_status = $3
			WHERE id = $4
		`, newPaid, summary.Balance, string(paymentStatus), invoiceID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice payment state: %w", err)
	}

	// Mirror the receipt into the cash/bank ledger. The account balance moves
	// in the same transaction as the posting so the two never diverge.
	if accountID != "" {
		var balance decimal.Decimal
		err = tx.QueryRow(ctx, "SELECT balance FROM accounts WHERE id = $1 FOR UPDATE", accountID).Scan(&balance)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("account %s not found", accountID)
			}
			return nil, fmt.Errorf("failed to fetch account %s: %w", accountID, err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO transactions (id, account_id, transaction_type, amount, description, reference_type, reference_id, date)
			VALUES ($1, $2, 'credit', $3, $4, 'invoice', $5, $6)
		`, uuid.NewString(), accountID, amount,
			fmt.Sprintf("Payment received for invoice %s", invoiceNumber), invoiceID, date)
		if err != nil {
			return nil, fmt.Errorf("failed to record payment transaction: %w", err)
		}

		if _, err = tx.Exec(ctx, "UPDATE accounts SET balance = $1 WHERE id = $2",
			balance.Add(amount), accountID); err != nil {
			return nil, fmt.Errorf("failed to update account balance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	return s.GetInvoice(ctx, invoiceID)
}

const invoiceColumns = `
	i.id, COALESCE(i.invoice_number, ''), i.date::text, i.status, i.invoice_type,
	i.tax_type, i.gst_percent,
	i.subtotal, i.discount_amount, i.vat_total, i.cgst_total, i.sgst_total, i.igst_total,
	i.grand_total, i.paid_amount, i.balance_due,
	i.customer_type, i.customer_id, i.customer_name,
	COALESCE(p.phone, ''), COALESCE(p.address, ''), COALESCE(p.gstin, ''),
	i.walk_in_name, i.walk_in_phone,
	i.payment_status, i.notes, i.created_at, i.finalized_at, i.paid_at
`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	var gstPercent decimal.Decimal
	var cgst, sgst, igst *decimal.Decimal
	var customerID *string
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.Date, &inv.Status, &inv.InvoiceType,
		&inv.TaxType, &gstPercent,
		&inv.Subtotal, &inv.DiscountAmount, &inv.VATTotal, &cgst, &sgst, &igst,
		&inv.GrandTotal, &inv.PaidAmount, &inv.BalanceDue,
		&inv.CustomerType, &customerID, &inv.CustomerName,
		&inv.CustomerPhone, &inv.CustomerAddress, &inv.CustomerGSTIN,
		&inv.WalkInName, &inv.WalkInPhone,
		&inv.PaymentStatus, &inv.Notes, &inv.CreatedAt, &inv.FinalizedAt, &inv.PaidAt,
	)
	if err != nil {
		return nil, err
	}
	inv.GSTPercent = NewAmount(gstPercent)
	if customerID != nil {
		inv.CustomerID = *customerID
	}
	if cgst != nil {
		inv.CGSTTotal = NewAmount(*cgst)
	}
	if sgst != nil {
		inv.SGSTTotal = NewAmount(*sgst)
	}
	if igst != nil {
		inv.IGSTTotal = NewAmount(*igst)
	}
	return &inv, nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+`
		FROM invoices i
		LEFT JOIN parties p ON p.id = i.customer_id
		WHERE i.id = $1
	`, invoiceID)
	inv, err := scanInvoice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invoice %s not found", invoiceID)
		}
		return nil, fmt.Errorf("failed to fetch invoice %s: %w", invoiceID, err)
	}

	items, err := s.fetchItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return inv, nil
}

func (s *invoiceService) fetchItems(ctx context.Context, invoiceID string) ([]RawInvoiceLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT description, qty, gross_weight, stone_weight, net_gold_weight, purity,
		       metal_rate, gold_value, making_value, stone_charges, wastage_charges,
		       item_discount, vat_amount, line_total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY line_number
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items: %w", err)
	}
	defer rows.Close()

	var items []RawInvoiceLine
	for rows.Next() {
		var qty int64
		var purity int
		var gross, stone, net, rate, gold, making, stoneCh, wastage, disc, vat, total decimal.Decimal
		var description string
		if err := rows.Scan(&description, &qty, &gross, &stone, &net, &purity,
			&rate, &gold, &making, &stoneCh, &wastage, &disc, &vat, &total); err != nil {
			return nil, fmt.Errorf("failed to scan invoice item: %w", err)
		}
		items = append(items, RawInvoiceLine{
			Description:    description,
			Qty:            NewAmount(decimal.NewFromInt(qty)),
			GrossWeight:    NewAmount(gross),
			StoneWeight:    NewAmount(stone),
			NetGoldWeight:  NewAmount(net),
			Purity:         NewAmount(decimal.NewFromInt(int64(purity))),
			MetalRate:      NewAmount(rate),
			GoldValue:      NewAmount(gold),
			MakingValue:    NewAmount(making),
			StoneCharges:   NewAmount(stoneCh),
			WastageCharges: NewAmount(wastage),
			ItemDiscount:   NewAmount(disc),
			VATAmount:      NewAmount(vat),
			LineTotal:      NewAmount(total),
		})
	}
	return items, rows.Err()
}

func (s *invoiceService) ListInvoices(ctx context.Context, status *InvoiceStatus, limit, offset int) ([]Invoice, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		LEFT JOIN parties p ON p.id = i.customer_id
	`
	args := []any{}
	if status != nil {
		query += " WHERE i.status = $1"
		args = append(args, string(*status))
	}
	query += fmt.Sprintf(" ORDER BY i.created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, *inv)
	}
	return invoices, rows.Err()
}

func (s *invoiceService) GetInvoiceFullDetails(ctx context.Context, invoiceID string) (*Invoice, *CustomerDetails, []Payment, error) {
	inv, err := s.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, nil, nil, err
	}

	var details *CustomerDetails
	if inv.CustomerType == CustomerSaved && inv.CustomerID != "" {
		var d CustomerDetails
		err = s.pool.QueryRow(ctx,
			"SELECT name, phone, address, gstin FROM parties WHERE id = $1",
			inv.CustomerID,
		).Scan(&d.Name, &d.Phone, &d.Address, &d.GSTIN)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil, fmt.Errorf("failed to fetch customer details: %w", err)
		}
		if err == nil {
			details = &d
		}
	}

	rows, err := s.pool.Query(ctx, `
		SELECT id, invoice_id, mode, account_id, amount, date::text, notes
		FROM payments
		WHERE invoice_id = $1
		ORDER BY created_at
	`, invoiceID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		var p Payment
		var amount decimal.Decimal
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Mode, &p.AccountID, &amount, &p.Date, &p.Notes); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		p.Amount = NewAmount(amount)
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, nil, err
	}

	return inv, details, payments, nil
}
