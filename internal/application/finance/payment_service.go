package finance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/finance"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
)

// OpRegisterPayment is the lifecycle operation name of RegisterPayment.
const OpRegisterPayment = "register_payment"

// PaymentService registers customer payments against posted invoices
type PaymentService struct {
	paymentRepo finance.PaymentRepository
	journalID   int64
	metrics     *telemetry.LifecycleMetrics
}

// NewPaymentService creates a new PaymentService. journalID is the bank or
// cash journal payments are booked on; 0 disables registration.
func NewPaymentService(paymentRepo finance.PaymentRepository, journalID int64) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		journalID:   journalID,
	}
}

// SetLifecycleMetrics sets the lifecycle metrics collector
func (s *PaymentService) SetLifecycleMetrics(m *telemetry.LifecycleMetrics) {
	s.metrics = m
}

// RegisterPayment pays the full residual of an invoice through the payment
// register wizard. An invoice that is already settled is reported with
// AlreadyPaid and nothing is created.
func (s *PaymentService) RegisterPayment(ctx context.Context, invoiceID int64) (*PaymentResult, error) {
	if invoiceID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "invoice id must be positive")
	}
	if s.journalID <= 0 {
		return nil, ErrJournalNotConfigured
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "payment", OpRegisterPayment,
		telemetry.WithAttribute(telemetry.SpanAttrInvoiceID, invoiceID),
	)
	defer span.End()
	log := logger.L(ctx)

	target, err := s.paymentRepo.FindTarget(ctx, invoiceID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	result := &PaymentResult{
		InvoiceID:     invoiceID,
		InvoiceName:   target.Name,
		Amount:        target.Residual,
		InitialStatus: target.PaymentState,
		FinalStatus:   target.PaymentState,
	}
	if target.IsSettled() {
		result.AlreadyPaid = true
		result.Message = fmt.Sprintf("Invoice %s is already paid.", target.Name)
		s.metrics.RecordOperation(ctx, OpRegisterPayment, telemetry.OutcomeNoop)
		return result, nil
	}

	draft := finance.PaymentDraft{
		InvoiceID: invoiceID,
		Amount:    target.Residual,
		JournalID: s.journalID,
	}
	if target.Partner != nil {
		draft.PartnerID = target.Partner.ID
	}
	if target.Currency != nil {
		draft.CurrencyID = target.Currency.ID
	}

	wizardID, err := s.paymentRepo.CreateRegistration(ctx, draft)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordOperation(ctx, OpRegisterPayment, telemetry.OutcomeFault)
		return nil, err
	}
	result.WizardID = wizardID

	if err := s.paymentRepo.ConfirmRegistration(ctx, wizardID, invoiceID); err != nil {
		return nil, s.paymentFailed(ctx, &PaymentSagaError{InvoiceID: invoiceID, WizardID: wizardID, Err: err})
	}

	final, err := s.paymentRepo.FindPaymentState(ctx, invoiceID)
	if err != nil {
		return nil, s.paymentFailed(ctx, &PaymentSagaError{InvoiceID: invoiceID, WizardID: wizardID, Err: err})
	}
	result.FinalStatus = final
	result.Message = fmt.Sprintf("Payment of %s registered for invoice %s.", target.Residual.StringFixed(2), target.Name)

	s.metrics.RecordOperation(ctx, OpRegisterPayment, telemetry.OutcomeSuccess)
	log.Info("Payment registered",
		zap.Int64("invoice_id", invoiceID),
		zap.Int64("wizard_id", wizardID),
		zap.String("amount", target.Residual.String()),
		zap.String("initial_status", string(target.PaymentState)),
		zap.String("final_status", string(final)),
	)
	return result, nil
}

func (s *PaymentService) paymentFailed(ctx context.Context, sagaErr *PaymentSagaError) error {
	s.metrics.RecordOperation(ctx, OpRegisterPayment, telemetry.OutcomePartial)
	logger.L(ctx).Warn("Payment wizard created but registration failed",
		zap.Int64("invoice_id", sagaErr.InvoiceID),
		zap.Int64("wizard_id", sagaErr.WizardID),
		zap.Error(sagaErr.Err),
	)
	return sagaErr
}
