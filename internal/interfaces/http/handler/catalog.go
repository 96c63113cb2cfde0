package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/erp/odoo-facade/internal/domain/catalog"
)

// ProductService is the catalog surface used by CatalogHandler
type ProductService interface {
	ListSellableProducts(ctx context.Context) ([]catalog.Product, error)
}

// CatalogHandler handles product catalog endpoints
type CatalogHandler struct {
	BaseHandler
	products ProductService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(products ProductService) *CatalogHandler {
	return &CatalogHandler{products: products}
}

// ListProducts godoc
// @ID           listCatalogProducts
// @Summary      List sellable products
// @Tags         catalog
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.Product]
// @Failure      502 {object} ErrorResponse
// @Router       /catalog/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.products.ListSellableProducts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if products == nil {
		products = []catalog.Product{}
	}
	h.Success(c, products)
}
