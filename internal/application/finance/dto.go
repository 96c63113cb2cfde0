package finance

import (
	"github.com/shopspring/decimal"

	"github.com/erp/odoo-facade/internal/domain/finance"
)

// PaymentResult is the outcome of RegisterPayment. AlreadyPaid results carry
// no wizard and leave FinalStatus equal to InitialStatus.
type PaymentResult struct {
	Message       string               `json:"message"`
	InvoiceID     int64                `json:"invoice_id"`
	InvoiceName   string               `json:"invoice_name,omitempty"`
	Amount        decimal.Decimal      `json:"amount"`
	AlreadyPaid   bool                 `json:"already_paid"`
	InitialStatus finance.PaymentState `json:"initial_status"`
	FinalStatus   finance.PaymentState `json:"final_status"`
	WizardID      int64                `json:"wizard_id,omitempty"`
}

// CustomerInvoices lists the customer invoices of one partner
type CustomerInvoices struct {
	CustomerID int64             `json:"customer_id"`
	Invoices   []finance.Invoice `json:"invoices"`
}
