package trade

import (
	"time"

	"github.com/erp/odoo-facade/internal/domain/inventory"
	"github.com/erp/odoo-facade/internal/domain/trade"
)

// =============================================================================
// Quotation DTOs
// =============================================================================

// CreateQuotationRequest represents a request to create a quotation with one
// line per product id. Duplicate ids produce duplicate lines.
type CreateQuotationRequest struct {
	CustomerID int64   `json:"customer_id" binding:"required,gt=0"`
	ProductIDs []int64 `json:"product_ids" binding:"required,min=1,dive,gt=0"`
}

// QuotationResult is the outcome of CreateQuotation
type QuotationResult struct {
	Message     string  `json:"message"`
	QuotationID int64   `json:"sale_order_id"`
	LineIDs     []int64 `json:"line_ids"`
}

// =============================================================================
// Sales order DTOs
// =============================================================================

// ConfirmOrdersRequest represents a batch confirmation request
type ConfirmOrdersRequest struct {
	OrderIDs []int64 `json:"order_ids" binding:"required,min=1,dive,gt=0"`
}

// ConfirmResult is the outcome of ConfirmOrders
type ConfirmResult struct {
	Message  string  `json:"message"`
	OrderIDs []int64 `json:"order_ids"`
	Result   any     `json:"result"`
}

// CancelResult is the outcome of CancelOrderWithNotification. AlreadyCancelled
// is informational: nothing was sent.
type CancelResult struct {
	Message          string `json:"message"`
	OrderID          int64  `json:"sale_order_id"`
	AlreadyCancelled bool   `json:"already_cancelled"`
	WizardID         int64  `json:"wizard_id,omitempty"`
	Result           any    `json:"result,omitempty"`
}

// =============================================================================
// Delivery DTOs
// =============================================================================

// ValidateDeliveryResult is the outcome of ValidateDelivery
type ValidateDeliveryResult struct {
	Message             string           `json:"message"`
	OrderID             int64            `json:"sale_order_id"`
	OrderState          trade.OrderState `json:"order_state"`
	ValidatedPickingIDs []int64          `json:"validated_pickings"`
}

// OrderDelivery is the delivery overview of one confirmed order
type OrderDelivery struct {
	OrderID        int64                    `json:"order_id"`
	OrderName      string                   `json:"order_name"`
	OrderState     trade.OrderState         `json:"order_state"`
	OrderDate      *time.Time               `json:"date_order,omitempty"`
	DeliveryStatus inventory.DeliveryStatus `json:"delivery_status"`
	Deliveries     []inventory.Picking      `json:"deliveries"`
}

// CustomerDeliveries is the delivery overview of a customer
type CustomerDeliveries struct {
	CustomerID int64           `json:"customer_id"`
	Orders     []OrderDelivery `json:"orders"`
}
