package finance

import (
	"context"

	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentState is the payment status of an invoice.
type PaymentState string

const (
	PaymentStateNotPaid   PaymentState = "not_paid"
	PaymentStatePartial   PaymentState = "partial"
	PaymentStateInPayment PaymentState = "in_payment"
	PaymentStatePaid      PaymentState = "paid"
	PaymentStateReversed  PaymentState = "reversed"
)

// SettlementThreshold is the residual at or below which an invoice counts
// as settled.
var SettlementThreshold = decimal.NewFromFloat(0.01)

// PaymentTarget is what a payment registration needs to know about an invoice.
type PaymentTarget struct {
	InvoiceID    int64
	Name         string
	Residual     decimal.Decimal
	Currency     *shared.Reference
	PaymentState PaymentState
	Partner      *shared.Reference
}

// IsSettled reports whether no payment is needed.
func (t PaymentTarget) IsSettled() bool {
	return t.Residual.LessThanOrEqual(SettlementThreshold) ||
		t.PaymentState == PaymentStatePaid ||
		t.PaymentState == PaymentStateInPayment
}

// PaymentDraft is the payload of the remote payment registration wizard.
type PaymentDraft struct {
	InvoiceID  int64
	Amount     decimal.Decimal
	PartnerID  int64
	JournalID  int64
	CurrencyID int64
}

// PaymentRepository drives the remote payment registration wizard.
type PaymentRepository interface {
	// FindTarget returns shared.ErrNotFound when the invoice does not exist.
	FindTarget(ctx context.Context, invoiceID int64) (*PaymentTarget, error)
	CreateRegistration(ctx context.Context, draft PaymentDraft) (int64, error)
	ConfirmRegistration(ctx context.Context, wizardID, invoiceID int64) error
	FindPaymentState(ctx context.Context, invoiceID int64) (PaymentState, error)
}
