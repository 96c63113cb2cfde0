package finance

import (
	"context"
	"io"

	"go.uber.org/zap"

	"github.com/erp/odoo-facade/internal/domain/finance"
	"github.com/erp/odoo-facade/internal/domain/shared"
	"github.com/erp/odoo-facade/internal/infrastructure/logger"
)

// URLResolver resolves a server-relative reference against the remote base URL.
type URLResolver interface {
	ResolveURL(ref string) (string, error)
}

// InvoiceRenderer writes a document for one invoice.
type InvoiceRenderer interface {
	Render(w io.Writer, inv *finance.Invoice) error
}

// InvoiceService is the read side of customer invoices
type InvoiceService struct {
	invoiceRepo finance.InvoiceRepository
	resolver    URLResolver
	renderer    InvoiceRenderer
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo finance.InvoiceRepository, resolver URLResolver) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		resolver:    resolver,
	}
}

// SetRenderer sets the renderer used by RenderInvoice
func (s *InvoiceService) SetRenderer(r InvoiceRenderer) {
	s.renderer = r
}

// GetCustomerInvoices returns the customer's out_invoice moves with lines
func (s *InvoiceService) GetCustomerInvoices(ctx context.Context, customerID int64) (*CustomerInvoices, error) {
	if customerID <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "customer id must be positive")
	}

	invoices, err := s.invoiceRepo.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if err := s.loadLines(ctx, &invoices[i]); err != nil {
			return nil, err
		}
	}
	if invoices == nil {
		invoices = []finance.Invoice{}
	}
	return &CustomerInvoices{CustomerID: customerID, Invoices: invoices}, nil
}

// GetInvoiceDetail returns one invoice with its lines
func (s *InvoiceService) GetInvoiceDetail(ctx context.Context, id int64) (*finance.Invoice, error) {
	if id <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "invoice id must be positive")
	}

	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.loadLines(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvoiceService) loadLines(ctx context.Context, inv *finance.Invoice) error {
	lines, err := s.invoiceRepo.FindLines(ctx, inv.LineIDs)
	if err != nil {
		return err
	}
	if lines == nil {
		lines = []finance.InvoiceLine{}
	}
	inv.Lines = lines
	return nil
}

// GetInvoicePreviewURL returns the customer portal preview of an invoice as
// an absolute URL resolved against the remote base URL.
func (s *InvoiceService) GetInvoicePreviewURL(ctx context.Context, id int64) (*finance.InvoicePreview, error) {
	if id <= 0 {
		return nil, shared.NewDomainError(shared.CodeInvalidInput, "invoice id must be positive")
	}

	path, err := s.invoiceRepo.PreviewPath(ctx, id)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, shared.NewDomainError(shared.CodePreviewUnavailable, "no preview available for this invoice")
	}

	full, err := s.resolver.ResolveURL(path)
	if err != nil {
		logger.L(ctx).Warn("Unresolvable invoice preview path", zap.Int64("invoice_id", id), zap.String("path", path), zap.Error(err))
		return nil, shared.NewDomainError(shared.CodePreviewUnavailable, "invoice preview path is not a valid URL reference")
	}
	return &finance.InvoicePreview{InvoiceID: id, URL: full, Path: path}, nil
}

// RenderInvoice writes the invoice summary document to w
func (s *InvoiceService) RenderInvoice(ctx context.Context, id int64, w io.Writer) error {
	if s.renderer == nil {
		return shared.NewDomainError(shared.CodeInvalidState, "invoice rendering is not configured")
	}
	inv, err := s.GetInvoiceDetail(ctx, id)
	if err != nil {
		return err
	}
	return s.renderer.Render(w, inv)
}
