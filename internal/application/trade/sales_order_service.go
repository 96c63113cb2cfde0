package trade

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/catalog"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/domain/trade"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
)

// Lifecycle operation names used in metrics and spans.
const (
	OpCreateQuotation  = "create_quotation"
	OpConfirmOrders    = "confirm_orders"
	OpCancelOrder      = "cancel_order"
	OpValidateDelivery = "validate_delivery"
)

// SalesOrderService handles quotations and the sales order lifecycle
type SalesOrderService struct {
	orderRepo   trade.SalesOrderRepository
	productRepo catalog.ProductRepository
	metrics     *telemetry.LifecycleMetrics
}

// NewSalesOrderService creates a new SalesOrderService
func NewSalesOrderService(orderRepo trade.SalesOrderRepository, productRepo catalog.ProductRepository) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// SetLifecycleMetrics sets the lifecycle metrics collector
func (s *SalesOrderService) SetLifecycleMetrics(m *telemetry.LifecycleMetrics) {
	s.metrics = m
}

// GetCustomerQuotations returns the customer's draft and sent orders with lines
func (s *SalesOrderService) GetCustomerQuotations(ctx context.Context, customerID int64) ([]trade.SalesOrder, error) {
	return s.ordersWithLines(ctx, customerID, trade.QuotationStates)
}

// GetCustomerSalesOrders returns the customer's confirmed (sale) orders with lines
func (s *SalesOrderService) GetCustomerSalesOrders(ctx context.Context, customerID int64) ([]trade.SalesOrder, error) {
	return s.ordersWithLines(ctx, customerID, []trade.OrderState{trade.OrderStateSale})
}

func (s *SalesOrderService) ordersWithLines(ctx context.Context, customerID int64, states []trade.OrderState) ([]trade.SalesOrder, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "customer id must be positive")
	}

	orders, err := s.orderRepo.FindByCustomer(ctx, customerID, states)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		lines, err := s.orderRepo.FindLines(ctx, orders[i].LineIDs)
		if err != nil {
			return nil, err
		}
		orders[i].Lines = lines
	}
	return orders, nil
}

// CreateQuotation creates a draft order for the customer and adds one line
// per product, in the given order, at quantity 1 and the product list price.
//
// There is no rollback. A failure after the header exists returns a
// *QuotationSagaError carrying the quotation id and the lines created so far.
func (s *SalesOrderService) CreateQuotation(ctx context.Context, req CreateQuotationRequest) (*QuotationResult, error) {
	if req.CustomerID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "customer id must be positive")
	}
	if len(req.ProductIDs) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "at least one product is required")
	}
	for _, pid := range req.ProductIDs {
		if pid <= 0 {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("invalid product id %d", pid))
		}
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", OpCreateQuotation,
		telemetry.WithAttribute(telemetry.SpanAttrCustomerID, req.CustomerID),
	)
	defer span.End()
	log := logger.L(ctx)

	quotationID, err := s.orderRepo.CreateQuotation(ctx, req.CustomerID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordOperation(ctx, OpCreateQuotation, telemetry.OutcomeFault)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderID, quotationID)

	lineIDs := make([]int64, 0, len(req.ProductIDs))
	for _, pid := range req.ProductIDs {
		lineID, err := s.addProductLine(ctx, quotationID, pid)
		if err != nil {
			sagaErr := &QuotationSagaError{
				QuotationID:     quotationID,
				CreatedLines:    lineIDs,
				FailedProductID: pid,
				Err:             err,
			}
			telemetry.RecordError(span, sagaErr)
			s.metrics.RecordOperation(ctx, OpCreateQuotation, telemetry.OutcomePartial)
			log.Warn("Quotation partially created",
				zap.Int64("quotation_id", quotationID),
				zap.Int("lines_created", len(lineIDs)),
				zap.Int64("failed_product_id", pid),
				zap.Error(err),
			)
			return nil, sagaErr
		}
		lineIDs = append(lineIDs, lineID)
	}

	s.metrics.RecordOperation(ctx, OpCreateQuotation, telemetry.OutcomeSuccess)
	log.Info("Quotation created",
		zap.Int64("quotation_id", quotationID),
		zap.Int64("customer_id", req.CustomerID),
		zap.Int("lines", len(lineIDs)),
	)
	return &QuotationResult{
		Message:     fmt.Sprintf("Quotation %d created successfully.", quotationID),
		QuotationID: quotationID,
		LineIDs:     lineIDs,
	}, nil
}

func (s *SalesOrderService) addProductLine(ctx context.Context, quotationID, productID int64) (int64, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return s.orderRepo.AddLine(ctx, trade.LineDraft{
		OrderID:   quotationID,
		ProductID: productID,
		Name:      product.Name,
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: product.ListPrice,
	})
}

// ConfirmOrders confirms all ids in one remote call. A fault fails the
// whole batch.
func (s *SalesOrderService) ConfirmOrders(ctx context.Context, req ConfirmOrdersRequest) (*ConfirmResult, error) {
	if len(req.OrderIDs) == 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "at least one order id is required")
	}
	for _, id := range req.OrderIDs {
		if id <= 0 {
			return nil, shared.NewDomainError(shared.CodeInvalidInput, fmt.Sprintf("invalid order id %d", id))
		}
	}

	result, err := s.orderRepo.Confirm(ctx, req.OrderIDs)
	if err != nil {
		s.metrics.RecordOperation(ctx, OpConfirmOrders, telemetry.OutcomeFault)
		return nil, err
	}

	s.metrics.RecordOperation(ctx, OpConfirmOrders, telemetry.OutcomeSuccess)
	logger.L(ctx).Info("Sales orders confirmed", zap.Int64s("order_ids", req.OrderIDs))
	return &ConfirmResult{
		Message:  fmt.Sprintf("Sale orders %v confirmed successfully.", req.OrderIDs),
		OrderIDs: req.OrderIDs,
		Result:   result,
	}, nil
}

// CancelOrderWithNotification cancels an order through the cancellation
// wizard, which also mails the customer. Cancelling a cancelled order is an
// informational success.
func (s *SalesOrderService) CancelOrderWithNotification(ctx context.Context, orderID int64) (*CancelResult, error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "order id must be positive")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "sales_order", OpCancelOrder,
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID),
	)
	defer span.End()

	state, err := s.orderRepo.FindState(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrOrderState, string(state))

	if state == trade.OrderStateCancel {
		s.metrics.RecordOperation(ctx, OpCancelOrder, telemetry.OutcomeNoop)
		return &CancelResult{
			Message:          fmt.Sprintf("Sale order %d is already in 'cancel' state.", orderID),
			OrderID:          orderID,
			AlreadyCancelled: true,
		}, nil
	}

	wizardID, err := s.orderRepo.CreateCancelWizard(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		s.metrics.RecordOperation(ctx, OpCancelOrder, telemetry.OutcomeFault)
		return nil, err
	}

	result, err := s.orderRepo.SendMailAndCancel(ctx, wizardID)
	if err != nil {
		sagaErr := &CancelSagaError{OrderID: orderID, WizardID: wizardID, Err: err}
		telemetry.RecordError(span, sagaErr)
		s.metrics.RecordOperation(ctx, OpCancelOrder, telemetry.OutcomePartial)
		logger.L(ctx).Warn("Cancel wizard created but cancellation failed",
			zap.Int64("order_id", orderID),
			zap.Int64("wizard_id", wizardID),
			zap.Error(err),
		)
		return nil, sagaErr
	}

	s.metrics.RecordOperation(ctx, OpCancelOrder, telemetry.OutcomeSuccess)
	logger.L(ctx).Info("Sales order cancelled", zap.Int64("order_id", orderID), zap.Int64("wizard_id", wizardID))
	return &CancelResult{
		Message:  fmt.Sprintf("Sale order %d cancelled and email sent.", orderID),
		OrderID:  orderID,
		WizardID: wizardID,
		Result:   result,
	}, nil
}
