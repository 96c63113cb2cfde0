package odoo

import (
	"context"
	"fmt"

	"github.com/erp/odoo-facade/internal/domain/catalog"
	"github.com/erp/odoo-facade/internal/domain/shared"
)

const modelProduct = "product.product"

// ProductRepository implements catalog.ProductRepository over product.product.
type ProductRepository struct {
	gw *Gateway
}

// NewProductRepository creates a new ProductRepository
func NewProductRepository(gw *Gateway) *ProductRepository {
	return &ProductRepository{gw: gw}
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)

func (r *ProductRepository) FindSellable(ctx context.Context) ([]catalog.Product, error) {
	reply, err := r.gw.Execute(ctx, SearchReadRequest{
		Model:  modelProduct,
		Domain: Domain{Where("sale_ok", OpEqual, true)},
		Fields: []string{"id", "name", "list_price", "default_code"},
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}

	products := make([]catalog.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, toProduct(rec))
	}
	return products, nil
}

// FindByID reads name and list price; an unknown id is shared.ErrNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	reply, err := r.gw.Execute(ctx, ReadRequest{
		Model:  modelProduct,
		IDs:    []int64{id},
		Fields: []string{"name", "list_price", "default_code"},
	})
	if err != nil {
		return nil, err
	}
	records, err := asRecords(reply)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.NewDomainError(shared.CodeNotFound, fmt.Sprintf("product %d not found", id))
	}

	p := toProduct(records[0])
	p.ID = id
	return &p, nil
}

func toProduct(rec Record) catalog.Product {
	return catalog.Product{
		ID:        rec.Int("id"),
		Name:      rec.String("name"),
		ListPrice: rec.Decimal("list_price"),
		Code:      rec.String("default_code"),
	}
}
