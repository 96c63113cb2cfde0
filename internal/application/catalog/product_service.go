package catalog

import (
	"context"

	"github.com/erp/odoo-facade/internal/domain/catalog"
)

// ProductService handles product catalog reads
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ListSellableProducts returns the products that can be put on a quotation
func (s *ProductService) ListSellableProducts(ctx context.Context) ([]catalog.Product, error) {
	return s.productRepo.FindSellable(ctx)
}
