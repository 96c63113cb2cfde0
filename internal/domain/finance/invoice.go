package finance

import (
	"context"
	"time"

	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoveTypeCustomerInvoice is the remote move type of customer invoices.
const MoveTypeCustomerInvoice = "out_invoice"

// InvoiceState is the posting state of an invoice.
type InvoiceState string

const (
	InvoiceStateDraft  InvoiceState = "draft"
	InvoiceStatePosted InvoiceState = "posted"
	InvoiceStateCancel InvoiceState = "cancel"
)

// Invoice is a read projection of a customer invoice.
type Invoice struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	State       InvoiceState      `json:"state"`
	InvoiceDate *time.Time        `json:"invoice_date,omitempty"`
	AmountTotal decimal.Decimal   `json:"amount_total"`
	Partner     *shared.Reference `json:"partner,omitempty"`
	LineIDs     []int64           `json:"-"`
	Lines       []InvoiceLine     `json:"invoice_lines"`
}

// InvoiceLine is an invoice line with the product flattened to its id.
type InvoiceLine struct {
	Name      string          `json:"name"`
	ProductID int64           `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price_unit"`
	Subtotal  decimal.Decimal `json:"price_subtotal"`
	Total     decimal.Decimal `json:"price_total"`
}

// InvoicePreview is the customer portal preview of an invoice.
type InvoicePreview struct {
	InvoiceID int64  `json:"invoice_id"`
	URL       string `json:"full_preview_url"`
	Path      string `json:"relative_url"`
}

// InvoiceRepository reads remote customer invoices.
type InvoiceRepository interface {
	FindByCustomer(ctx context.Context, customerID int64) ([]Invoice, error)
	// FindByID returns shared.ErrNotFound when the invoice does not exist.
	FindByID(ctx context.Context, id int64) (*Invoice, error)
	FindLines(ctx context.Context, lineIDs []int64) ([]InvoiceLine, error)
	// PreviewPath returns the relative portal path, or "" when the remote
	// service has none (for example an unposted invoice).
	PreviewPath(ctx context.Context, id int64) (string, error)
}
