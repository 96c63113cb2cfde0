package trade

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/inventory"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/domain/trade"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
	"github.com/erp/odoo-facade/internal/infrastructure/telemetry"
)

// DeliveryService reports and validates the pickings of confirmed orders
type DeliveryService struct {
	orderRepo   trade.SalesOrderRepository
	pickingRepo inventory.PickingRepository
	metrics     *telemetry.LifecycleMetrics
}

// NewDeliveryService creates a new DeliveryService
func NewDeliveryService(orderRepo trade.SalesOrderRepository, pickingRepo inventory.PickingRepository) *DeliveryService {
	return &DeliveryService{
		orderRepo:   orderRepo,
		pickingRepo: pickingRepo,
	}
}

// SetLifecycleMetrics sets the lifecycle metrics collector
func (s *DeliveryService) SetLifecycleMetrics(m *telemetry.LifecycleMetrics) {
	s.metrics = m
}

// GetCustomerDeliveries lists the customer's sale and done orders with their
// pickings and an aggregate delivery status per order.
func (s *DeliveryService) GetCustomerDeliveries(ctx context.Context, customerID int64) (*CustomerDeliveries, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "customer id must be positive")
	}

	orders, err := s.orderRepo.FindFulfilmentByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	result := &CustomerDeliveries{
		CustomerID: customerID,
		Orders:     make([]OrderDelivery, 0, len(orders)),
	}
	for _, order := range orders {
		pickings, err := s.pickingRepo.FindByIDs(ctx, order.PickingIDs)
		if err != nil {
			return nil, err
		}
		if pickings == nil {
			pickings = []inventory.Picking{}
		}
		status := inventory.AggregateDeliveryStatus(inventory.States(pickings))
		s.metrics.RecordDeliveryStatus(ctx, string(status))

		result.Orders = append(result.Orders, OrderDelivery{
			OrderID:        order.ID,
			OrderName:      order.Name,
			OrderState:     order.State,
			OrderDate:      order.OrderDate,
			DeliveryStatus: status,
			Deliveries:     pickings,
		})
	}
	return result, nil
}

// ValidateDelivery confirms a draft order and validates every picking that
// is not yet done or cancelled, in picking order. Running it again on a
// fully delivered order validates nothing.
func (s *DeliveryService) ValidateDelivery(ctx context.Context, orderID int64) (*ValidateDeliveryResult, error) {
	if orderID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "order id must be positive")
	}

	ctx, span := telemetry.StartServiceSpan(ctx, "delivery", OpValidateDelivery,
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, orderID),
	)
	defer span.End()
	log := logger.L(ctx)

	order, err := s.orderRepo.FindFulfilment(ctx, orderID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	state := order.State
	confirmed := false
	if state == trade.OrderStateDraft {
		if _, err := s.orderRepo.Confirm(ctx, []int64{orderID}); err != nil {
			telemetry.RecordError(span, err)
			s.metrics.RecordOperation(ctx, OpValidateDelivery, telemetry.OutcomeFault)
			return nil, err
		}
		confirmed = true
		state = trade.OrderStateSale
		// confirmation creates the pickings
		order, err = s.orderRepo.FindFulfilment(ctx, orderID)
		if err != nil {
			return nil, s.deliveryFailed(ctx, span, &DeliverySagaError{OrderID: orderID, Confirmed: true, Err: err})
		}
		log.Info("Draft order confirmed before delivery", zap.Int64("order_id", orderID))
	}

	pickings, err := s.pickingRepo.FindByIDs(ctx, order.PickingIDs)
	if err != nil {
		if confirmed {
			return nil, s.deliveryFailed(ctx, span, &DeliverySagaError{OrderID: orderID, Confirmed: true, Err: err})
		}
		telemetry.RecordError(span, err)
		return nil, err
	}

	validated := []int64{}
	for _, p := range pickings {
		if p.State.IsFinal() {
			continue
		}
		if err := s.pickingRepo.Validate(ctx, p.ID); err != nil {
			s.metrics.RecordPickingsValidated(ctx, len(validated))
			return nil, s.deliveryFailed(ctx, span, &DeliverySagaError{
				OrderID:             orderID,
				Confirmed:           confirmed,
				ValidatedPickingIDs: validated,
				FailedPickingID:     p.ID,
				Err:                 err,
			})
		}
		validated = append(validated, p.ID)
	}

	if len(validated) > 0 {
		state = trade.OrderStateDone
	}

	outcome := telemetry.OutcomeSuccess
	if !confirmed && len(validated) == 0 {
		outcome = telemetry.OutcomeNoop
	}
	s.metrics.RecordPickingsValidated(ctx, len(validated))
	s.metrics.RecordOperation(ctx, OpValidateDelivery, outcome)
	log.Info("Delivery validated",
		zap.Int64("order_id", orderID),
		zap.String("order_state", string(state)),
		zap.Int64s("validated_pickings", validated),
	)

	return &ValidateDeliveryResult{
		Message:             fmt.Sprintf("Sale order processed. Current state: %s", state),
		OrderID:             orderID,
		OrderState:          state,
		ValidatedPickingIDs: validated,
	}, nil
}

func (s *DeliveryService) deliveryFailed(ctx context.Context, span trace.Span, sagaErr *DeliverySagaError) error {
	telemetry.RecordError(span, sagaErr)
	s.metrics.RecordOperation(ctx, OpValidateDelivery, telemetry.OutcomePartial)
	logger.L(ctx).Warn("Delivery validation stopped part way",
		zap.Int64("order_id", sagaErr.OrderID),
		zap.Bool("order_confirmed", sagaErr.Confirmed),
		zap.Int64s("validated_pickings", sagaErr.ValidatedPickingIDs),
		zap.Int64("failed_picking_id", sagaErr.FailedPickingID),
		zap.Error(sagaErr.Err),
	)
	return sagaErr
}
