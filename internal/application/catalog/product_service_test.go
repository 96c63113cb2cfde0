package catalog

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/erp/odoo-facade/internal/domain/catalog"
	"github.com/erp/odoo-facade/internal/domain/shared"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindSellable(ctx context.Context) ([]catalog.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id int64) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func TestProductService_ListSellableProducts(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	ctx := context.Background()

	products := []catalog.Product{
		{ID: 5, Name: "Desk", ListPrice: decimal.NewFromInt(300), Code: "DESK"},
		{ID: 6, Name: "Chair", ListPrice: decimal.RequireFromString("49.90")},
	}
	repo.On("FindSellable", ctx).Return(products, nil)

	got, err := svc.ListSellableProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestProductService_ListSellableProducts_Error(t *testing.T) {
	repo := new(MockProductRepository)
	svc := NewProductService(repo)
	ctx := context.Background()

	repo.On("FindSellable", ctx).Return(nil, shared.ErrAuthentication)

	_, err := svc.ListSellableProducts(ctx)
	assert.ErrorIs(t, err, shared.ErrAuthentication)
}
