// Package pdf renders local summary documents with gofpdf.
package pdf

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/erp/odoo-facade/internal/domain/finance"
)

// ErrNilInvoice is returned when Render is given no invoice.
var ErrNilInvoice = errors.New("pdf: invoice is nil")

const (
	fontFamily = "Arial"
	lineHeight = 7.0
)

// column widths in mm; A4 portrait minus 10mm margins is 190mm
var lineColumns = []struct {
	title string
	width float64
	align string
}{
	{"Description", 90, "L"},
	{"Qty", 20, "R"},
	{"Unit price", 25, "R"},
	{"Subtotal", 25, "R"},
	{"Total", 30, "R"},
}

// InvoiceRenderer renders an invoice header and its lines as an A4 PDF.
type InvoiceRenderer struct {
	CompanyName string
	now         func() time.Time
}

// NewInvoiceRenderer creates a new InvoiceRenderer
func NewInvoiceRenderer(companyName string) *InvoiceRenderer {
	return &InvoiceRenderer{CompanyName: companyName, now: time.Now}
}

// Render writes the PDF for inv to w
func (r *InvoiceRenderer) Render(w io.Writer, inv *finance.Invoice) error {
	if inv == nil {
		return ErrNilInvoice
	}

	doc := gofpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetTitle(inv.Name, true)
	doc.SetCreator(r.CompanyName, true)
	doc.SetCreationDate(r.now())
	doc.AddPage()

	doc.SetFont(fontFamily, "B", 16)
	doc.CellFormat(0, 10, tr("Invoice "+inv.Name), "", 1, "L", false, 0, "")
	doc.SetFont(fontFamily, "", 10)
	if r.CompanyName != "" {
		doc.CellFormat(0, lineHeight, tr(r.CompanyName), "", 1, "L", false, 0, "")
	}
	if inv.Partner != nil {
		doc.CellFormat(0, lineHeight, tr("Bill to: "+inv.Partner.Name), "", 1, "L", false, 0, "")
	}
	if inv.InvoiceDate != nil {
		doc.CellFormat(0, lineHeight, "Date: "+inv.InvoiceDate.Format("2006-01-02"), "", 1, "L", false, 0, "")
	}
	doc.CellFormat(0, lineHeight, "Status: "+string(inv.State), "", 1, "L", false, 0, "")
	doc.Ln(4)

	doc.SetFont(fontFamily, "B", 10)
	doc.SetFillColor(230, 230, 230)
	for _, col := range lineColumns {
		doc.CellFormat(col.width, lineHeight, col.title, "1", 0, col.align, true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont(fontFamily, "", 10)
	for _, line := range inv.Lines {
		cells := []string{
			tr(line.Name),
			line.Quantity.String(),
			line.UnitPrice.StringFixed(2),
			line.Subtotal.StringFixed(2),
			line.Total.StringFixed(2),
		}
		for i, col := range lineColumns {
			doc.CellFormat(col.width, lineHeight, cells[i], "1", 0, col.align, false, 0, "")
		}
		doc.Ln(-1)
	}

	doc.SetFont(fontFamily, "B", 11)
	labelWidth := 0.0
	for _, col := range lineColumns[:len(lineColumns)-1] {
		labelWidth += col.width
	}
	doc.CellFormat(labelWidth, lineHeight+1, "Amount total", "1", 0, "R", false, 0, "")
	doc.CellFormat(lineColumns[len(lineColumns)-1].width, lineHeight+1, inv.AmountTotal.StringFixed(2), "1", 1, "R", false, 0, "")

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("render invoice %d: %w", inv.ID, err)
	}
	return nil
}
