package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product is a sellable product variant.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	ListPrice decimal.Decimal `json:"list_price"`
	Code      string          `json:"default_code,omitempty"`
}

// ProductRepository reads remote product variants.
type ProductRepository interface {
	FindSellable(ctx context.Context) ([]Product, error)
	// FindByID returns shared.ErrNotFound when the product does not exist.
	FindByID(ctx context.Context, id int64) (*Product, error)
}
