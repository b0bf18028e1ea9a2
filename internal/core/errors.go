package core

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConfigurationError marks an invoice configured with a value the system does
// not recognize (e.g. an unknown tax type). It is fatal: composition aborts
// and no partial breakdown is returned.
type ConfigurationError struct {
	Field string
	Value string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: unrecognized %s %q", e.Field, e.Value)
}

// ValidationError marks a structurally impossible value on an invoice
// snapshot, such as a discount larger than the subtotal or a negative
// quantity. It is fatal: composition aborts and no partial breakdown is
// returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// ReconciliationWarning reports a non-fatal divergence between the recorded
// payment rows and the invoice's authoritative paid amount. Composition
// proceeds on the invoice figure; the warning is surfaced to the caller for
// audit logging.
type ReconciliationWarning struct {
	PaymentsTotal decimal.Decimal `json:"payments_total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
}

func (w ReconciliationWarning) Message() string {
	return fmt.Sprintf("recorded payments total %s does not match invoice paid amount %s",
		w.PaymentsTotal.StringFixed(3), w.PaidAmount.StringFixed(3))
}
