package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	supportapp "github.com/erp/odoo-facade/internal/application/support"
	"github.com/erp/odoo-facade/internal/domain/support"
)

// ContactService is the inquiry surface used by SupportHandler
type ContactService interface {
	SubmitInquiry(ctx context.Context, inquiry support.Inquiry) (*support.PostedInquiry, error)
}

// SupportHandler handles customer service endpoints
type SupportHandler struct {
	BaseHandler
	contact ContactService
}

// NewSupportHandler creates a new SupportHandler
func NewSupportHandler(contact ContactService) *SupportHandler {
	return &SupportHandler{contact: contact}
}

// SubmitInquiry godoc
// @ID           submitSupportInquiry
// @Summary      Post a customer inquiry to the support channel
// @Tags         support
// @Accept       json
// @Produce      json
// @Param        request body supportapp.SubmitInquiryRequest true "Inquiry"
// @Success      201 {object} APIResponse[support.PostedInquiry]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /support/inquiries [post]
func (h *SupportHandler) SubmitInquiry(c *gin.Context) {
	var req supportapp.SubmitInquiryRequest
	if !h.bindJSON(c, &req) {
		return
	}
	posted, err := h.contact.SubmitInquiry(c.Request.Context(), req.ToInquiry())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, posted)
}
