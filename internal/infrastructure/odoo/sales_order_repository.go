package odoo

import (
	"context"
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/domain/trade"
)

const (
	modelSaleOrder       = "sale.order"
	modelSaleOrderLine   = "sale.order.line"
	modelSaleOrderCancel = "sale.order.cancel"
)

var (
	orderFields      = []string{"id", "name", "state", "create_date", "amount_total", "order_line"}
	orderLineFields  = []string{"name", "product_id", "product_uom_qty", "price_unit", "price_total"}
	fulfilmentFields = []string{"id", "name", "state", "date_order", "picking_ids"}
)

// SalesOrderRepository implements trade.SalesOrderRepository over sale.order
// and its line and cancellation wizard models.
type SalesOrderRepository struct {
	gw *Gateway
}

// NewSalesOrderRepository creates a new SalesOrderRepository
func NewSalesOrderRepository(gw *Gateway) *SalesOrderRepository {
	return &SalesOrderRepository{gw: gw}
}

var _ trade.SalesOrderRepository = (*SalesOrderRepository)(nil)

func (r *SalesOrderRepository) FindByCustomer(ctx context.Context, customerID int64, states []trade.OrderState) ([]trade.SalesOrder, error) {
	domain := Domain{Where("partner_id", OpEqual, customerID)}
	switch len(states) {
	case 0:
	case 1:
		domain = append(domain, Where("state", OpEqual, string(states[0])))
	default:
		domain = append(domain, Where("state", OpIn, trade.StateStrings(states)))
	}

	records, err := r.searchRead(ctx, domain, orderFields)
	if err != nil {
		return nil, err
	}

	orders := make([]trade.SalesOrder, 0, len(records))
	for _, rec := range records {
		orders = append(orders, trade.SalesOrder{
			ID:          rec.Int("id"),
			Name:        rec.String("name"),
			State:       trade.OrderState(rec.String("state")),
			CreatedAt:   rec.Time("create_date"),
			AmountTotal: rec.Decimal("amount_total"),
			LineIDs:     rec.IDs("order_line"),
		})
	}
	return orders, nil
}

func (r *SalesOrderRepository) FindLines(ctx context.Context, lineIDs []int64) ([]trade.OrderLine, error) {
	if len(lineIDs) == 0 {
		return []trade.OrderLine{}, nil
	}
	reply, err := r.gw.Execute(ctx, ReadRequest{
		Model:  modelSaleOrderLine,
		IDs:    lineIDs,
		Fields: orderLineFields,
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}

	lines := make([]trade.OrderLine, 0, len(records))
	for _, rec := range records {
		lines = append(lines, trade.OrderLine{
			Name:      rec.String("name"),
			ProductID: rec.Many2oneID("product_id"),
			Quantity:  rec.Decimal("product_uom_qty"),
			UnitPrice: rec.Decimal("price_unit"),
			Total:     rec.Decimal("price_total"),
		})
	}
	return lines, nil
}

func (r *SalesOrderRepository) FindFulfilmentByCustomer(ctx context.Context, customerID int64) ([]trade.FulfilmentOrder, error) {
	records, err := r.searchRead(ctx, Domain{
		Where("partner_id", OpEqual, customerID),
		Where("state", OpIn, trade.StateStrings(trade.FulfilmentStates)),
	}, fulfilmentFields)
	if err != nil {
		return nil, err
	}

	orders := make([]trade.FulfilmentOrder, 0, len(records))
	for _, rec := range records {
		orders = append(orders, toFulfilment(rec))
	}
	return orders, nil
}

func (r *SalesOrderRepository) FindFulfilment(ctx context.Context, id int64) (*trade.FulfilmentOrder, error) {
	records, err := r.searchRead(ctx, Domain{Where("id", OpEqual, id)}, fulfilmentFields)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, orderNotFound(id)
	}
	order := toFulfilment(records[0])
	return &order, nil
}

func (r *SalesOrderRepository) FindState(ctx context.Context, id int64) (trade.OrderState, error) {
	records, err := r.searchRead(ctx, Domain{Where("id", OpEqual, id)}, []string{"state"})
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "", orderNotFound(id)
	}
	return trade.OrderState(records[0].String("state")), nil
}

func (r *SalesOrderRepository) CreateQuotation(ctx context.Context, customerID int64) (int64, error) {
	reply, err := r.gw.Execute(ctx, CreateRequest{
		Model:  modelSaleOrder,
		Values: map[string]any{"partner_id": customerID},
	})
	if err != nil {
		return 0, err
	}
	return asID(reply)
}

func (r *SalesOrderRepository) AddLine(ctx context.Context, line trade.LineDraft) (int64, error) {
	reply, err := r.gw.Execute(ctx, CreateRequest{
		Model: modelSaleOrderLine,
		Values: map[string]any{
			"order_id":        line.OrderID,
			"product_id":      line.ProductID,
			"name":            line.Name,
			"product_uom_qty": line.Quantity.InexactFloat64(),
			"price_unit":      line.UnitPrice.InexactFloat64(),
		},
	})
	if err != nil {
		return 0, err
	}
	return asID(reply)
}

func (r *SalesOrderRepository) Confirm(ctx context.Context, ids []int64) (any, error) {
	return r.gw.Execute(ctx, ActionRequest{
		Model:  modelSaleOrder,
		Method: "action_confirm",
		IDs:    ids,
	})
}

func (r *SalesOrderRepository) CreateCancelWizard(ctx context.Context, orderID int64) (int64, error) {
	reply, err := r.gw.Execute(ctx, CreateRequest{
		Model:  modelSaleOrderCancel,
		Values: map[string]any{"order_id": orderID},
	})
	if err != nil {
		return 0, err
	}
	return asID(reply)
}

func (r *SalesOrderRepository) SendMailAndCancel(ctx context.Context, wizardID int64) (any, error) {
	return r.gw.Execute(ctx, ActionRequest{
		Model:  modelSaleOrderCancel,
		Method: "action_send_mail_and_cancel",
		IDs:    []int64{wizardID},
	})
}

func (r *SalesOrderRepository) searchRead(ctx context.Context, domain Domain, fields []string) ([]Record, error) {
	reply, err := r.gw.Execute(ctx, SearchReadRequest{
		Model:  modelSaleOrder,
		Domain: domain,
		Fields: fields,
	})
	if err != nil {
		return nil, err
	}
	return asRecords(reply)
}

func toFulfilment(rec Record) trade.FulfilmentOrder {
	return trade.FulfilmentOrder{
		ID:         rec.Int("id"),
		Name:       rec.String("name"),
		State:      trade.OrderState(rec.String("state")),
		OrderDate:  rec.Time("date_order"),
		PickingIDs: rec.IDs("picking_ids"),
	}
}

func orderNotFound(id int64) error {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("sales order %d not found", id))
}
