package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	tradeapp "github.com/erp/odoo-facade/internal/application/trade"
	"github.com/erp/odoo-facade/internal/domain/trade"
)

// SalesOrderService is the order lifecycle surface used by TradeHandler
type SalesOrderService interface {
	GetCustomerQuotations(ctx context.Context, customerID int64) ([]trade.SalesOrder, error)
	GetCustomerSalesOrders(ctx context.Context, customerID int64) ([]trade.SalesOrder, error)
	CreateQuotation(ctx context.Context, req tradeapp.CreateQuotationRequest) (*tradeapp.QuotationResult, error)
	ConfirmOrders(ctx context.Context, req tradeapp.ConfirmOrdersRequest) (*tradeapp.ConfirmResult, error)
	CancelOrderWithNotification(ctx context.Context, orderID int64) (*tradeapp.CancelResult, error)
}

// DeliveryService is the delivery surface used by TradeHandler
type DeliveryService interface {
	GetCustomerDeliveries(ctx context.Context, customerID int64) (*tradeapp.CustomerDeliveries, error)
	ValidateDelivery(ctx context.Context, orderID int64) (*tradeapp.ValidateDeliveryResult, error)
}

// TradeHandler handles quotation, sales order and delivery endpoints
type TradeHandler struct {
	BaseHandler
	orders     SalesOrderService
	deliveries DeliveryService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(orders SalesOrderService, deliveries DeliveryService) *TradeHandler {
	return &TradeHandler{orders: orders, deliveries: deliveries}
}

// ListQuotations godoc
// @ID           listTradeCustomerQuotations
// @Summary      List a customer's quotations with their lines
// @Tags         trade
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[[]trade.SalesOrder]
// @Failure      400 {object} ErrorResponse
// @Router       /trade/customers/{id}/quotations [get]
func (h *TradeHandler) ListQuotations(c *gin.Context) {
	h.listOrders(c, h.orders.GetCustomerQuotations)
}

// ListSalesOrders godoc
// @ID           listTradeCustomerSalesOrders
// @Summary      List a customer's confirmed sales orders with their lines
// @Tags         trade
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[[]trade.SalesOrder]
// @Failure      400 {object} ErrorResponse
// @Router       /trade/customers/{id}/sales-orders [get]
func (h *TradeHandler) ListSalesOrders(c *gin.Context) {
	h.listOrders(c, h.orders.GetCustomerSalesOrders)
}

func (h *TradeHandler) listOrders(c *gin.Context, find func(context.Context, int64) ([]trade.SalesOrder, error)) {
	customerID, ok := h.bindID(c)
	if !ok {
		return
	}
	orders, err := find(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if orders == nil {
		orders = []trade.SalesOrder{}
	}
	h.Success(c, orders)
}

// CreateQuotation godoc
// @ID           createTradeQuotation
// @Summary      Create a quotation
// @Description  Adds one line per product id at list price. A failure after the header exists is reported with the partial progress in error.detail.
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateQuotationRequest true "Quotation"
// @Success      201 {object} APIResponse[tradeapp.QuotationResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /trade/quotations [post]
func (h *TradeHandler) CreateQuotation(c *gin.Context) {
	var req tradeapp.CreateQuotationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.orders.CreateQuotation(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ConfirmOrders godoc
// @ID           confirmTradeSalesOrders
// @Summary      Confirm sales orders in one batch
// @Tags         trade
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.ConfirmOrdersRequest true "Order ids"
// @Success      200 {object} APIResponse[tradeapp.ConfirmResult]
// @Failure      400 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/confirm [post]
func (h *TradeHandler) ConfirmOrders(c *gin.Context) {
	var req tradeapp.ConfirmOrdersRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.orders.ConfirmOrders(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// CancelOrder godoc
// @ID           cancelTradeSalesOrder
// @Summary      Cancel a sales order and notify the customer
// @Description  An order already cancelled is reported with already_cancelled=true.
// @Tags         trade
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Success      200 {object} APIResponse[tradeapp.CancelResult]
// @Failure      404 {object} ErrorResponse
// @Failure      502 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/cancel [post]
func (h *TradeHandler) CancelOrder(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	result, err := h.orders.CancelOrderWithNotification(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ListDeliveries godoc
// @ID           listTradeCustomerDeliveries
// @Summary      Delivery status of a customer's confirmed orders
// @Tags         trade
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[tradeapp.CustomerDeliveries]
// @Failure      400 {object} ErrorResponse
// @Router       /trade/customers/{id}/deliveries [get]
func (h *TradeHandler) ListDeliveries(c *gin.Context) {
	customerID, ok := h.bindID(c)
	if !ok {
		return
	}
	result, err := h.deliveries.GetCustomerDeliveries(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ValidateDelivery godoc
// @ID           validateTradeDelivery
// @Summary      Confirm if needed and validate every open picking of an order
// @Description  Idempotent. A failure part way reports the pickings already validated in error.detail.
// @Tags         trade
// @Produce      json
// @Param        id path int true "Sales order ID"
// @Success      200 {object} APIResponse[tradeapp.ValidateDeliveryResult]
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /trade/sales-orders/{id}/validate-delivery [put]
func (h *TradeHandler) ValidateDelivery(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	result, err := h.deliveries.ValidateDelivery(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
