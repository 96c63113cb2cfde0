package trade

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder is a read projection of a remote sales order. Quotations are
// sales orders in draft or sent state.
type SalesOrder struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	State       OrderState      `json:"state"`
	CreatedAt   *time.Time      `json:"create_date,omitempty"`
	AmountTotal decimal.Decimal `json:"amount_total"`
	LineIDs     []int64         `json:"-"`
	Lines       []OrderLine     `json:"order_lines"`
}

// OrderLine is a sales order line with the product flattened to its id.
type OrderLine struct {
	Name      string          `json:"name"`
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"product_uom_qty"`
	UnitPrice decimal.Decimal `json:"price_unit"`
	Total     decimal.Decimal `json:"price_total"`
}

// FulfilmentOrder is the delivery-oriented projection of a confirmed order.
type FulfilmentOrder struct {
	ID         int64
	Name       string
	State      OrderState
	OrderDate  *time.Time
	PickingIDs []int64
}

// LineDraft is the payload of a new quotation line.
type LineDraft struct {
	OrderID   int64
	ProductID int64
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// SalesOrderRepository reads and drives remote sales orders.
type SalesOrderRepository interface {
	FindByCustomer(ctx context.Context, customerID int64, states []OrderState) ([]SalesOrder, error)
	FindLines(ctx context.Context, lineIDs []int64) ([]OrderLine, error)
	FindFulfilmentByCustomer(ctx context.Context, customerID int64) ([]FulfilmentOrder, error)
	// FindFulfilment returns shared.ErrNotFound when the order does not exist.
	FindFulfilment(ctx context.Context, id int64) (*FulfilmentOrder, error)
	// FindState returns shared.ErrNotFound when the order does not exist.
	FindState(ctx context.Context, id int64) (OrderState, error)

	CreateQuotation(ctx context.Context, customerID int64) (int64, error)
	AddLine(ctx context.Context, line LineDraft) (int64, error)
	// Confirm confirms ids in one batch and returns the raw remote result.
	Confirm(ctx context.Context, ids []int64) (any, error)
	CreateCancelWizard(ctx context.Context, orderID int64) (int64, error)
	SendMailAndCancel(ctx context.Context, wizardID int64) (any, error)
}
