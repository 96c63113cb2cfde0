package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	financeapp "github.com/erp/odoo-facade/internal/application/finance"
	"github.com/erp/odoo-facade/internal/domain/finance"
)

// InvoiceService is the invoice surface used by FinanceHandler
type InvoiceService interface {
	GetCustomerInvoices(ctx context.Context, customerID int64) (*financeapp.CustomerInvoices, error)
	GetInvoiceDetail(ctx context.Context, id int64) (*finance.Invoice, error)
	GetInvoicePreviewURL(ctx context.Context, id int64) (*finance.InvoicePreview, error)
	RenderInvoice(ctx context.Context, id int64, w io.Writer) error
}

// PaymentService is the payment surface used by FinanceHandler
type PaymentService interface {
	RegisterPayment(ctx context.Context, invoiceID int64) (*financeapp.PaymentResult, error)
}

// FinanceHandler handles invoice and payment endpoints
type FinanceHandler struct {
	BaseHandler
	invoices InvoiceService
	payments PaymentService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(invoices InvoiceService, payments PaymentService) *FinanceHandler {
	return &FinanceHandler{invoices: invoices, payments: payments}
}

// ListInvoices godoc
// @ID           listFinanceCustomerInvoices
// @Summary      List a customer's invoices with their lines
// @Tags         finance
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[financeapp.CustomerInvoices]
// @Failure      400 {object} ErrorResponse
// @Router       /finance/customers/{id}/invoices [get]
func (h *FinanceHandler) ListInvoices(c *gin.Context) {
	customerID, ok := h.bindID(c)
	if !ok {
		return
	}
	result, err := h.invoices.GetCustomerInvoices(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetInvoice godoc
// @ID           getFinanceInvoice
// @Summary      Get invoice detail
// @Tags         finance
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} APIResponse[finance.Invoice]
// @Failure      404 {object} ErrorResponse
// @Router       /finance/invoices/{id} [get]
func (h *FinanceHandler) GetInvoice(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	invoice, err := h.invoices.GetInvoiceDetail(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, invoice)
}

// GetPreviewURL godoc
// @ID           getFinanceInvoicePreviewURL
// @Summary      Customer portal URL of an invoice
// @Tags         finance
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} APIResponse[finance.InvoicePreview]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /finance/invoices/{id}/preview-url [get]
func (h *FinanceHandler) GetPreviewURL(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	preview, err := h.invoices.GetInvoicePreviewURL(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, preview)
}

// DownloadPDF godoc
// @ID           downloadFinanceInvoicePDF
// @Summary      Download a summary PDF of an invoice
// @Description  Rendered locally from the invoice detail; not the ERP's legal document.
// @Tags         finance
// @Produce      application/pdf
// @Param        id path int true "Invoice ID"
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Router       /finance/invoices/{id}/pdf [get]
func (h *FinanceHandler) DownloadPDF(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}

	// buffered so a render failure can still produce a JSON error
	var buf bytes.Buffer
	if err := h.invoices.RenderInvoice(c.Request.Context(), id, &buf); err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="invoice-%d.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// RegisterPayment godoc
// @ID           registerFinanceInvoicePayment
// @Summary      Register a payment for the open residual of an invoice
// @Description  Settled invoices are reported with already_paid=true. A failure after the wizard is created carries wizard_id in error.detail.
// @Tags         finance
// @Produce      json
// @Param        id path int true "Invoice ID"
// @Success      200 {object} APIResponse[financeapp.PaymentResult]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /finance/invoices/{id}/payments [post]
func (h *FinanceHandler) RegisterPayment(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	result, err := h.payments.RegisterPayment(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
