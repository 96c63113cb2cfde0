package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	partnerapp "github.com/erp/odoo-facade/internal/application/partner"
	"github.com/erp/odoo-facade/internal/domain/partner"
)

// CustomerService is the customer surface used by PartnerHandler
type CustomerService interface {
	ListBusinessCustomers(ctx context.Context) ([]partner.CustomerSummary, error)
	GetCustomer(ctx context.Context, id int64) (*partner.Customer, error)
	UpdateByName(ctx context.Context, name string, update partner.ContactUpdate) (*partner.ContactUpdateResult, error)
}

// PartnerHandler handles customer-related API endpoints
type PartnerHandler struct {
	BaseHandler
	customers CustomerService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(customers CustomerService) *PartnerHandler {
	return &PartnerHandler{customers: customers}
}

// ListCustomers godoc
// @ID           listPartnerCustomers
// @Summary      List business customers
// @Tags         partner
// @Produce      json
// @Success      200 {object} APIResponse[[]partner.CustomerSummary]
// @Failure      502 {object} ErrorResponse
// @Router       /partner/customers [get]
func (h *PartnerHandler) ListCustomers(c *gin.Context) {
	customers, err := h.customers.ListBusinessCustomers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if customers == nil {
		customers = []partner.CustomerSummary{}
	}
	h.Success(c, customers)
}

// GetCustomer godoc
// @ID           getPartnerCustomer
// @Summary      Get customer details
// @Tags         partner
// @Produce      json
// @Param        id path int true "Customer ID"
// @Success      200 {object} APIResponse[partner.Customer]
// @Failure      404 {object} ErrorResponse
// @Router       /partner/customers/{id} [get]
func (h *PartnerHandler) GetCustomer(c *gin.Context) {
	id, ok := h.bindID(c)
	if !ok {
		return
	}
	customer, err := h.customers.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, customer)
}

// UpdateContact godoc
// @ID           updatePartnerCustomerContact
// @Summary      Update customer contact details by exact name
// @Description  Writes only the supplied fields. An empty body changes nothing.
// @Tags         partner
// @Accept       json
// @Produce      json
// @Param        name path string true "Exact customer name"
// @Param        request body partnerapp.UpdateContactRequest true "Contact fields"
// @Success      200 {object} APIResponse[partner.ContactUpdateResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /partner/customers/by-name/{name} [post]
func (h *PartnerHandler) UpdateContact(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if name == "" {
		h.BadRequest(c, "customer name is required")
		return
	}

	var req partnerapp.UpdateContactRequest
	if !h.bindJSON(c, &req) {
		return
	}

	result, err := h.customers.UpdateByName(c.Request.Context(), name, req.ToContactUpdate())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
