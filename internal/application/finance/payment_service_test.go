package finance

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-facade/internal/domain/finance"
	"github.com/erp/odoo-facade/internal/domain/integration"
	"github.com/erp/odoo-facade/internal/domain/shared"
)

// MockPaymentRepository is a mock implementation of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindTarget(ctx context.Context, invoiceID int64) (*finance.PaymentTarget, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.PaymentTarget), args.Error(1)
}

func (m *MockPaymentRepository) CreateRegistration(ctx context.Context, draft finance.PaymentDraft) (int64, error) {
	args := m.Called(ctx, draft)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPaymentRepository) ConfirmRegistration(ctx context.Context, wizardID, invoiceID int64) error {
	args := m.Called(ctx, wizardID, invoiceID)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindPaymentState(ctx context.Context, invoiceID int64) (finance.PaymentState, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).(finance.PaymentState), args.Error(1)
}

func openTarget(residual string) *finance.PaymentTarget {
	return &finance.PaymentTarget{
		InvoiceID:    11,
		Name:         "INV/2024/0011",
		Residual:     decimal.RequireFromString(residual),
		Currency:     &shared.Reference{ID: 1, Name: "EUR"},
		PaymentState: finance.PaymentStateNotPaid,
		Partner:      &shared.Reference{ID: 7, Name: "Azure Interior"},
	}
}

func TestPaymentService_RegisterPayment(t *testing.T) {
	repo := new(MockPaymentRepository)
	svc := NewPaymentService(repo, 6)

	repo.On("FindTarget", mock.Anything, int64(11)).Return(openTarget("1250.00"), nil)
	repo.On("CreateRegistration", mock.Anything, finance.PaymentDraft{
		InvoiceID:  11,
		Amount:     decimal.RequireFromString("1250.00"),
		PartnerID:  7,
		JournalID:  6,
		CurrencyID: 1,
	}).Return(int64(90), nil)
	repo.On("ConfirmRegistration", mock.Anything, int64(90), int64(11)).Return(nil)
	repo.On("FindPaymentState", mock.Anything, int64(11)).Return(finance.PaymentStateInPayment, nil)

	result, err := svc.RegisterPayment(context.Background(), 11)

	require.NoError(t, err)
	assert.False(t, result.AlreadyPaid)
	assert.Equal(t, int64(90), result.WizardID)
	assert.Equal(t, finance.PaymentStateNotPaid, result.InitialStatus)
	assert.Equal(t, finance.PaymentStateInPayment, result.FinalStatus)
	assert.True(t, result.Amount.Equal(decimal.NewFromInt(1250)))
	assert.Equal(t, "Payment of 1250.00 registered for invoice INV/2024/0011.", result.Message)
	repo.AssertExpectations(t)
}

func TestPaymentService_RegisterPayment_AlreadySettled(t *testing.T) {
	tests := []struct {
		name   string
		target *finance.PaymentTarget
	}{
		{"zero residual", openTarget("0")},
		{"residual at threshold", openTarget("0.01")},
		{"paid state", func() *finance.PaymentTarget {
			pt := openTarget("10")
			pt.PaymentState = finance.PaymentStatePaid
			return pt
		}()},
		{"in payment state", func() *finance.PaymentTarget {
			pt := openTarget("10")
			pt.PaymentState = finance.PaymentStateInPayment
			return pt
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockPaymentRepository)
			svc := NewPaymentService(repo, 6)
			repo.On("FindTarget", mock.Anything, int64(11)).Return(tt.target, nil)

			result, err := svc.RegisterPayment(context.Background(), 11)

			require.NoError(t, err)
			assert.True(t, result.AlreadyPaid)
			assert.Zero(t, result.WizardID)
			repo.AssertNotCalled(t, "CreateRegistration", mock.Anything, mock.Anything)
		})
	}
}

func TestPaymentService_RegisterPayment_JustAboveThreshold(t *testing.T) {
	repo := new(MockPaymentRepository)
	svc := NewPaymentService(repo, 6)

	repo.On("FindTarget", mock.Anything, int64(11)).Return(openTarget("0.02"), nil)
	repo.On("CreateRegistration", mock.Anything, mock.AnythingOfType("finance.PaymentDraft")).Return(int64(90), nil)
	repo.On("ConfirmRegistration", mock.Anything, int64(90), int64(11)).Return(nil)
	repo.On("FindPaymentState", mock.Anything, int64(11)).Return(finance.PaymentStatePaid, nil)

	result, err := svc.RegisterPayment(context.Background(), 11)

	require.NoError(t, err)
	assert.False(t, result.AlreadyPaid)
}

func TestPaymentService_RegisterPayment_JournalNotConfigured(t *testing.T) {
	repo := new(MockPaymentRepository)
	svc := NewPaymentService(repo, 0)

	_, err := svc.RegisterPayment(context.Background(), 11)

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, "payment journal not configured", err.Error())
	repo.AssertNotCalled(t, "FindTarget", mock.Anything, mock.Anything)
}

func TestPaymentService_RegisterPayment_ConfirmFails(t *testing.T) {
	repo := new(MockPaymentRepository)
	svc := NewPaymentService(repo, 6)

	fault := &integration.RemoteFault{Kind: integration.FaultKindValidation, Category: "UserError", Message: "journal has no payment method"}
	repo.On("FindTarget", mock.Anything, int64(11)).Return(openTarget("100"), nil)
	repo.On("CreateRegistration", mock.Anything, mock.AnythingOfType("finance.PaymentDraft")).Return(int64(90), nil)
	repo.On("ConfirmRegistration", mock.Anything, int64(90), int64(11)).Return(fault)

	_, err := svc.RegisterPayment(context.Background(), 11)

	var sagaErr *PaymentSagaError
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, int64(90), sagaErr.WizardID)
	assert.ErrorIs(t, err, fault)
	assert.Contains(t, err.Error(), "manual review may be required")
	assert.Equal(t, "UserError", sagaErr.ErrorDetail()["cause"].(map[string]any)["category"])
	repo.AssertNotCalled(t, "FindPaymentState", mock.Anything, mock.Anything)
}

func TestPaymentService_RegisterPayment_InvoiceNotFound(t *testing.T) {
	repo := new(MockPaymentRepository)
	svc := NewPaymentService(repo, 6)

	repo.On("FindTarget", mock.Anything, int64(404)).Return(nil, shared.NewDomainError(shared.CodeNotFound, "invoice 404 not found"))

	_, err := svc.RegisterPayment(context.Background(), 404)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}
