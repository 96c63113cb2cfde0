package trade

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-facade/internal/domain/catalog"
	"github.com/erp/odoo-facade/internal/domain/integration"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/domain/trade"
)

// MockSalesOrderRepository is a mock implementation of SalesOrderRepository
type MockSalesOrderRepository struct {
	mock.Mock
}

func (m *MockSalesOrderRepository) FindByCustomer(ctx context.Context, customerID int64, states []trade.OrderState) ([]trade.SalesOrder, error) {
	args := m.Called(ctx, customerID, states)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.SalesOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindLines(ctx context.Context, lineIDs []int64) ([]trade.OrderLine, error) {
	args := m.Called(ctx, lineIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.OrderLine), args.Error(1)
}

func (m *MockSalesOrderRepository) FindFulfilmentByCustomer(ctx context.Context, customerID int64) ([]trade.FulfilmentOrder, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.FulfilmentOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindFulfilment(ctx context.Context, id int64) (*trade.FulfilmentOrder, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.FulfilmentOrder), args.Error(1)
}

func (m *MockSalesOrderRepository) FindState(ctx context.Context, id int64) (trade.OrderState, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(trade.OrderState), args.Error(1)
}

func (m *MockSalesOrderRepository) CreateQuotation(ctx context.Context, customerID int64) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) AddLine(ctx context.Context, line trade.LineDraft) (int64, error) {
	args := m.Called(ctx, line)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) Confirm(ctx context.Context, ids []int64) (any, error) {
	args := m.Called(ctx, ids)
	return args.Get(0), args.Error(1)
}

func (m *MockSalesOrderRepository) CreateCancelWizard(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSalesOrderRepository) SendMailAndCancel(ctx context.Context, wizardID int64) (any, error) {
	args := m.Called(ctx, wizardID)
	return args.Get(0), args.Error(1)
}

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindSellable(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func newSalesOrderService() (*SalesOrderService, *MockSalesOrderRepository, *MockProductRepository) {
	orders := new(MockSalesOrderRepository)
	products := new(MockProductRepository)
	return NewSalesOrderService(orders, products), orders, products
}

func lineFor(orderID int64, p catalog.Product) trade.LineDraft {
	return trade.LineDraft{
		OrderID:   orderID,
		ProductID: p.ID,
		Name:      p.Name,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: p.ListPrice,
	}
}

func TestSalesOrderService_GetCustomerQuotations(t *testing.T) {
	svc, orders, _ := newSalesOrderService()
	ctx := context.Background()

	orders.On("FindByCustomer", ctx, int64(7), trade.QuotationStates).Return([]trade.SalesOrder{
		{ID: 31, Name: "S00031", State: trade.OrderStateDraft, LineIDs: []int64{101, 102}},
		{ID: 32, Name: "S00032", State: trade.OrderStateSent},
	}, nil)
	orders.On("FindLines", ctx, []int64{101, 102}).Return([]trade.OrderLine{
		{Name: "Desk", ProductID: 5},
		{Name: "Chair", ProductID: 6},
	}, nil)
	orders.On("FindLines", ctx, []int64(nil)).Return([]trade.OrderLine{}, nil)

	got, err := svc.GetCustomerQuotations(ctx, 7)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Len(t, got[0].Lines, 2)
	assert.Equal(t, "Chair", got[0].Lines[1].Name)
	assert.Empty(t, got[1].Lines)
	orders.AssertExpectations(t)
}

func TestSalesOrderService_GetCustomerSalesOrders(t *testing.T) {
	svc, orders, _ := newSalesOrderService()
	ctx := context.Background()

	orders.On("FindByCustomer", ctx, int64(7), []trade.OrderState{trade.OrderStateSale}).Return([]trade.SalesOrder{}, nil)

	got, err := svc.GetCustomerSalesOrders(ctx, 7)

	require.NoError(t, err)
	assert.Empty(t, got)
	orders.AssertExpectations(t)
}

func TestSalesOrderService_GetCustomerQuotations_InvalidCustomer(t *testing.T) {
	svc, orders, _ := newSalesOrderService()

	_, err := svc.GetCustomerQuotations(context.Background(), 0)

	assert.ErrorIs(t, err, shared.ErrInvalidInput)
	orders.AssertNotCalled(t, "FindByCustomer", mock.Anything, mock.Anything, mock.Anything)
}

func TestSalesOrderService_CreateQuotation(t *testing.T) {
	svc, orders, products := newSalesOrderService()
	ctx := context.Background()

	desk := catalog.Product{ID: 1, Name: "Desk", ListPrice: decimal.RequireFromString("320.50")}
	lamp := catalog.Product{ID: 2, Name: "Lamp", ListPrice: decimal.RequireFromString("49.90")}

	orders.On("CreateQuotation", mock.Anything, int64(7)).Return(int64(40), nil)
	products.On("FindByID", mock.Anything, int64(1)).Return(&desk, nil)
	products.On("FindByID", mock.Anything, int64(2)).Return(&lamp, nil)

	var added []trade.LineDraft
	orders.On("AddLine", mock.Anything, mock.AnythingOfType("trade.LineDraft")).
		Run(func(args mock.Arguments) { added = append(added, args.Get(1).(trade.LineDraft)) }).
		Return(int64(500), nil).Once()
	orders.On("AddLine", mock.Anything, mock.AnythingOfType("trade.LineDraft")).
		Run(func(args mock.Arguments) { added = append(added, args.Get(1).(trade.LineDraft)) }).
		Return(int64(501), nil).Once()
	orders.On("AddLine", mock.Anything, mock.AnythingOfType("trade.LineDraft")).
		Run(func(args mock.Arguments) { added = append(added, args.Get(1).(trade.LineDraft)) }).
		Return(int64(502), nil).Once()

	result, err := svc.CreateQuotation(ctx, CreateQuotationRequest{CustomerID: 7, ProductIDs: []int64{1, 2, 2}})

	require.NoError(t, err)
	assert.Equal(t, int64(40), result.QuotationID)
	assert.Equal(t, "Quotation 40 created successfully.", result.Message)
	assert.Equal(t, []int64{500, 501, 502}, result.LineIDs)
	require.Len(t, added, 3)
	assert.Equal(t, lineFor(40, desk), added[0])
	assert.Equal(t, lineFor(40, lamp), added[1])
	assert.Equal(t, lineFor(40, lamp), added[2])
	orders.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestSalesOrderService_CreateQuotation_PartialFailure(t *testing.T) {
	svc, orders, products := newSalesOrderService()
	ctx := context.Background()

	desk := catalog.Product{ID: 1, Name: "Desk", ListPrice: decimal.NewFromInt(300)}
	orders.On("CreateQuotation", mock.Anything, int64(7)).Return(int64(40), nil)
	products.On("FindByID", mock.Anything, int64(1)).Return(&desk, nil)
	products.On("FindByID", mock.Anything, int64(99)).
		Return(nil, shared.NewDomainError(shared.CodeNotFound, "product 99 not found"))
	orders.On("AddLine", mock.Anything, lineFor(40, desk)).Return(int64(501), nil)

	result, err := svc.CreateQuotation(ctx, CreateQuotationRequest{CustomerID: 7, ProductIDs: []int64{1, 99, 1}})

	require.Error(t, err)
	assert.Nil(t, result)

	var sagaErr *QuotationSagaError
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, int64(40), sagaErr.QuotationID)
	assert.Equal(t, []int64{501}, sagaErr.CreatedLines)
	assert.Equal(t, int64(99), sagaErr.FailedProductID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	detail := sagaErr.ErrorDetail()
	assert.Equal(t, int64(40), detail["quotation_id"])
	orders.AssertNumberOfCalls(t, "AddLine", 1)
}

func TestSalesOrderService_CreateQuotation_HeaderFailure(t *testing.T) {
	svc, orders, products := newSalesOrderService()

	fault := &integration.RemoteFault{Kind: integration.FaultKindValidation, Message: "Customer is archived"}
	orders.On("CreateQuotation", mock.Anything, int64(7)).Return(int64(0), fault)

	_, err := svc.CreateQuotation(context.Background(), CreateQuotationRequest{CustomerID: 7, ProductIDs: []int64{1}})

	assert.ErrorIs(t, err, fault)
	var sagaErr *QuotationSagaError
	assert.False(t, errors.As(err, &sagaErr))
	products.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestSalesOrderService_CreateQuotation_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  CreateQuotationRequest
	}{
		{"missing customer", CreateQuotationRequest{ProductIDs: []int64{1}}},
		{"no products", CreateQuotationRequest{CustomerID: 7}},
		{"non-positive product", CreateQuotationRequest{CustomerID: 7, ProductIDs: []int64{1, -3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, orders, _ := newSalesOrderService()

			_, err := svc.CreateQuotation(context.Background(), tt.req)

			assert.ErrorIs(t, err, shared.ErrInvalidInput)
			orders.AssertNotCalled(t, "CreateQuotation", mock.Anything, mock.Anything)
		})
	}
}

func TestSalesOrderService_ConfirmOrders(t *testing.T) {
	svc, orders, _ := newSalesOrderService()
	ctx := context.Background()

	orders.On("Confirm", ctx, []int64{31, 32}).Return(true, nil)

	result, err := svc.ConfirmOrders(ctx, ConfirmOrdersRequest{OrderIDs: []int64{31, 32}})

	require.NoError(t, err)
	assert.Equal(t, []int64{31, 32}, result.OrderIDs)
	assert.Equal(t, true, result.Result)
	assert.Contains(t, result.Message, "confirmed successfully")
}

func TestSalesOrderService_ConfirmOrders_Fault(t *testing.T) {
	svc, orders, _ := newSalesOrderService()
	ctx := context.Background()

	fault := &integration.RemoteFault{Kind: integration.FaultKindValidation, Message: "It is not allowed to confirm an order in the following states: Cancelled"}
	orders.On("Confirm", ctx, []int64{33}).Return(nil, fault)

	_, err := svc.ConfirmOrders(ctx, ConfirmOrdersRequest{OrderIDs: []int64{33}})

	assert.ErrorIs(t, err, fault)
}

func TestSalesOrderService_CancelOrderWithNotification(t *testing.T) {
	svc, orders, _ := newSalesOrderService()

	orders.On("FindState", mock.Anything, int64(31)).Return(trade.OrderStateSale, nil)
	orders.On("CreateCancelWizard", mock.Anything, int64(31)).Return(int64(12), nil)
	orders.On("SendMailAndCancel", mock.Anything, int64(12)).Return(true, nil)

	result, err := svc.CancelOrderWithNotification(context.Background(), 31)

	require.NoError(t, err)
	assert.False(t, result.AlreadyCancelled)
	assert.Equal(t, int64(12), result.WizardID)
	assert.Equal(t, "Sale order 31 cancelled and email sent.", result.Message)
	orders.AssertExpectations(t)
}

func TestSalesOrderService_CancelOrderWithNotification_AlreadyCancelled(t *testing.T) {
	svc, orders, _ := newSalesOrderService()

	orders.On("FindState", mock.Anything, int64(31)).Return(trade.OrderStateCancel, nil)

	result, err := svc.CancelOrderWithNotification(context.Background(), 31)

	require.NoError(t, err)
	assert.True(t, result.AlreadyCancelled)
	assert.Equal(t, "Sale order 31 is already in 'cancel' state.", result.Message)
	orders.AssertNotCalled(t, "CreateCancelWizard", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "SendMailAndCancel", mock.Anything, mock.Anything)
}

func TestSalesOrderService_CancelOrderWithNotification_NotFound(t *testing.T) {
	svc, orders, _ := newSalesOrderService()

	orders.On("FindState", mock.Anything, int64(404)).
		Return(trade.OrderState(""), shared.NewDomainError(shared.CodeNotFound, "sales order 404 not found"))

	_, err := svc.CancelOrderWithNotification(context.Background(), 404)

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestSalesOrderService_CancelOrderWithNotification_WizardFails(t *testing.T) {
	svc, orders, _ := newSalesOrderService()

	fault := &integration.RemoteFault{Kind: integration.FaultKindValidation, Message: "no email template"}
	orders.On("FindState", mock.Anything, int64(31)).Return(trade.OrderStateSent, nil)
	orders.On("CreateCancelWizard", mock.Anything, int64(31)).Return(int64(12), nil)
	orders.On("SendMailAndCancel", mock.Anything, int64(12)).Return(nil, fault)

	_, err := svc.CancelOrderWithNotification(context.Background(), 31)

	var sagaErr *CancelSagaError
	require.ErrorAs(t, err, &sagaErr)
	assert.Equal(t, int64(12), sagaErr.WizardID)
	assert.ErrorIs(t, err, fault)
}
