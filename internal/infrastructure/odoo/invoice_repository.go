package odoo

import (
	"context"
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/finance"
	"github.com/erp/odoo-facade/internal/domain/shared"
)

const (
	modelMove     = "account.move"
	modelMoveLine = "account.move.line"
)

var (
	invoiceFields     = []string{"id", "name", "state", "invoice_date", "amount_total", "partner_id", "invoice_line_ids"}
	invoiceLineFields = []string{"name", "product_id", "quantity", "price_unit", "price_subtotal", "price_total"}
)

// InvoiceRepository implements finance.InvoiceRepository over account.move.
type InvoiceRepository struct {
	gw *Gateway
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(gw *Gateway) *InvoiceRepository {
	return &InvoiceRepository{gw: gw}
}

var _ finance.InvoiceRepository = (*InvoiceRepository)(nil)

func (r *InvoiceRepository) FindByCustomer(ctx context.Context, customerID int64) ([]finance.Invoice, error) {
	reply, err := r.gw.Execute(ctx, SearchReadRequest{
		Model: modelMove,
		Domain: Domain{
			Where("partner_id", OpEqual, customerID),
			Where("move_type", OpEqual, finance.MoveTypeCustomerInvoice),
		},
		Fields: invoiceFields,
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}

	invoices := make([]finance.Invoice, 0, len(records))
	for _, rec := range records {
		invoices = append(invoices, toInvoice(rec))
	}
	return invoices, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*finance.Invoice, error) {
	reply, err := r.gw.Execute(ctx, ReadRequest{
		Model:  modelMove,
		IDs:    []int64{id},
		Fields: invoiceFields,
	})
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
	inv := toInvoice(records[0])
	inv.ID = id
	return &inv, nil
}

func (r *InvoiceRepository) FindLines(ctx context.Context, lineIDs []int64) ([]finance.InvoiceLine, error) {
	if len(lineIDs) == 0 {
		return []finance.InvoiceLine{}, nil
	}
	reply, err := r.gw.Execute(ctx, ReadRequest{
		Model:  modelMoveLine,
		IDs:    lineIDs,
		Fields: invoiceLineFields,
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}

	lines := make([]finance.InvoiceLine, 0, len(records))
	for _, rec := range records {
		lines = append(lines, finance.InvoiceLine{
			Name:      rec.String("name"),
			ProductID: rec.Many2oneID("product_id"),
			Quantity:  rec.Decimal("quantity"),
			UnitPrice: rec.Decimal("price_unit"),
			Subtotal:  rec.Decimal("price_subtotal"),
			Total:     rec.Decimal("price_total"),
		})
	}
	return lines, nil
}

func (r *InvoiceRepository) PreviewPath(ctx context.Context, id int64) (string, error) {
	reply, err := r.gw.Execute(ctx, ActionRequest{
		Model:  modelMove,
		Method: "preview_invoice",
		IDs:    []int64{id},
	})
	if err != nil {
		return "", err
	}
	action, ok := reply.(map[string]any)
	if !ok {
		return "", nil
	}
	path, _ := action["url"].(string)
	return path, nil
}

func toInvoice(rec Record) finance.Invoice {
	return finance.Invoice{
		ID:          rec.Int("id"),
		Name:        rec.String("name"),
		State:       finance.InvoiceState(rec.String("state")),
		InvoiceDate: rec.Time("invoice_date"),
		AmountTotal: rec.Decimal("amount_total"),
		Partner:     rec.Many2one("partner_id"),
		LineIDs:     rec.IDs("invoice_line_ids"),
	}
}

func invoiceNotFound(id int64) error {
	return shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("invoice %d not found", id))
}
