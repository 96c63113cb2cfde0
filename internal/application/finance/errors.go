package finance

import (
	"errors"
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// ErrJournalNotConfigured is returned by RegisterPayment when no payment
// journal id is configured.
var ErrJournalNotConfigured = shared.NewDomainError(shared.CodeInvalidState, "payment journal not configured")

// PaymentSagaError reports a payment registration that failed after its
// wizard was created. The wizard may need manual review.
type PaymentSagaError struct {
	InvoiceID int64
	WizardID  int64
	Err       error
}

func (e *PaymentSagaError) Error() string {
	return fmt.Sprintf("payment wizard %d for invoice %d failed, manual review may be required: %v",
		e.WizardID, e.InvoiceID, e.Err)
}

func (e *PaymentSagaError) Unwrap() error { return e.Err }

func (e *PaymentSagaError) ErrorDetail() map[string]any {
	detail := map[string]any{
		"invoice_id": e.InvoiceID,
		"wizard_id":  e.WizardID,
		"hint":       "manual review may be required",
	}
	var de shared.DetailedError
	if errors.As(e.Err, &de) {
		detail["cause"] = de.ErrorDetail()
	}
	return detail
}
