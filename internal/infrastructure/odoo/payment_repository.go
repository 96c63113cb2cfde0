package odoo

import (
	"context"

	"github.com/erp/odoo-facade/internal/domain/finance"
)

const modelPaymentRegister = "account.payment.register"

// PaymentRepository implements finance.PaymentRepository through the
// account.payment.register wizard.
type PaymentRepository struct {
	gw *Gateway
}

// NewPaymentRepository creates a new PaymentRepository
func NewPaymentRepository(gw *Gateway) *PaymentRepository {
	return &PaymentRepository{gw: gw}
}

var _ finance.PaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) FindTarget(ctx context.Context, invoiceID int64) (*finance.PaymentTarget, error) {
	rec, err := r.readInvoice(ctx, invoiceID, "name", "amount_residual", "currency_id", "payment_state", "partner_id")
	if err != nil {
		return nil, err
	}
	return &finance.PaymentTarget{
		InvoiceID:    invoiceID,
		Name:         rec.String("name"),
		Residual:     rec.Decimal("amount_residual"),
		Currency:     rec.Many2one("currency_id"),
		PaymentState: finance.PaymentState(rec.String("payment_state")),
		Partner:      rec.Many2one("partner_id"),
	}, nil
}

func (r *PaymentRepository) CreateRegistration(ctx context.Context, draft finance.PaymentDraft) (int64, error) {
	values := map[string]any{
		"amount":       draft.Amount.InexactFloat64(),
		"payment_type": "inbound",
		"partner_type": "customer",
		"partner_id":   draft.PartnerID,
		"journal_id":   draft.JournalID,
	}
	if draft.CurrencyID > 0 {
		values["currency_id"] = draft.CurrencyID
	}

	reply, err := r.gw.Execute(ctx, CreateRequest{
		Model:   modelPaymentRegister,
		Values:  values,
		Context: invoiceContext(draft.InvoiceID),
	})
	if err != nil {
		return 0, err
	}
	return asID(reply)
}

func (r *PaymentRepository) ConfirmRegistration(ctx context.Context, wizardID, invoiceID int64) error {
	_, err := r.gw.Execute(ctx, ActionRequest{
		Model:  modelPaymentRegister,
		Method: "action_create_payments",
		IDs:    []int64{wizardID},
		Kwargs: map[string]any{"context": invoiceContext(invoiceID)},
	})
	return err
}

func (r *PaymentRepository) FindPaymentState(ctx context.Context, invoiceID int64) (finance.PaymentState, error) {
	rec, err := r.readInvoice(ctx, invoiceID, "payment_state")
	if err != nil {
		return "", err
	}
	return finance.PaymentState(rec.String("payment_state")), nil
}

func (r *PaymentRepository) readInvoice(ctx context.Context, id int64, fields ...string) (Record, error) {
	reply, err := r.gw.Execute(ctx, ReadRequest{Model: modelMove, IDs: []int64{id}, Fields: fields})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, invoiceNotFound(id)
	}
	return records[0], nil
}

// invoiceContext is the evaluation context the payment wizard reads its
// target invoice from.
func invoiceContext(invoiceID int64) map[string]any {
	return map[string]any{
		"active_model": modelMove,
		"active_ids":   []int64{invoiceID},
		"active_id":    invoiceID,
	}
}
