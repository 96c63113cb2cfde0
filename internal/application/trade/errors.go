package trade

import (
	"errors"
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/shared"
)

// QuotationSagaError reports a quotation whose header was created but whose
// lines were not all added. Nothing is rolled back: the quotation exists
// remotely with CreatedLines.
type QuotationSagaError struct {
	QuotationID     int64
	CreatedLines    []int64
	FailedProductID int64
	Err             error
}

func (e *QuotationSagaError) Error() string {
	return fmt.Sprintf("quotation %d created with %d line(s); adding product %d failed: %v",
		e.QuotationID, len(e.CreatedLines), e.FailedProductID, e.Err)
}

func (e *QuotationSagaError) Unwrap() error { return e.Err }

func (e *QuotationSagaError) ErrorDetail() map[string]any {
	return withCause(map[string]any{
		"quotation_id":      e.QuotationID,
		"created_line_ids":  e.CreatedLines,
		"failed_product_id": e.FailedProductID,
	}, e.Err)
}

// CancelSagaError reports a cancellation that failed after its wizard was
// created.
type CancelSagaError struct {
	OrderID  int64
	WizardID int64
	Err      error
}

func (e *CancelSagaError) Error() string {
	return fmt.Sprintf("cancel wizard %d for sales order %d failed: %v", e.WizardID, e.OrderID, e.Err)
}

func (e *CancelSagaError) Unwrap() error { return e.Err }

func (e *CancelSagaError) ErrorDetail() map[string]any {
	return withCause(map[string]any{
		"sale_order_id": e.OrderID,
		"wizard_id":     e.WizardID,
	}, e.Err)
}

// DeliverySagaError reports a delivery validation that stopped part way.
// ValidatedPickingIDs were validated before the failure and stay validated.
type DeliverySagaError struct {
	OrderID             int64
	Confirmed           bool
	ValidatedPickingIDs []int64
	FailedPickingID     int64
	Err                 error
}

func (e *DeliverySagaError) Error() string {
	if e.FailedPickingID == 0 {
		return fmt.Sprintf("delivery validation of sales order %d failed: %v", e.OrderID, e.Err)
	}
	return fmt.Sprintf("delivery validation of sales order %d failed at picking %d after %d validated: %v",
		e.OrderID, e.FailedPickingID, len(e.ValidatedPickingIDs), e.Err)
}

func (e *DeliverySagaError) Unwrap() error { return e.Err }

func (e *DeliverySagaError) ErrorDetail() map[string]any {
	detail := map[string]any{
		"sale_order_id":      e.OrderID,
		"order_confirmed":    e.Confirmed,
		"validated_pickings": e.ValidatedPickingIDs,
	}
	if e.FailedPickingID != 0 {
		detail["failed_picking_id"] = e.FailedPickingID
	}
	return withCause(detail, e.Err)
}

func withCause(detail map[string]any, err error) map[string]any {
	var de shared.DetailedError
	if errors.As(err, &de) {
		detail["cause"] = de.ErrorDetail()
	}
	return detail
}
