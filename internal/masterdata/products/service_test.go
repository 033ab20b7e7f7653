package products

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

type mockRepository struct {
	products map[int64]*Product
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{products: make(map[int64]*Product)}
}

func (m *mockRepository) Create(_ context.Context, p *Product) (int64, error) {
	m.nextID++
	cp := *p
	cp.ID = m.nextID
	m.products[m.nextID] = &cp
	return m.nextID, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, fmt.Errorf("product %d: %w", id, httpx.ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (m *mockRepository) List(_ context.Context, _ string) ([]Product, error) {
	var out []Product
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockRepository) Update(_ context.Context, p *Product) error {
	if _, ok := m.products[p.ID]; !ok {
		return httpx.ErrNotFound
	}
	cp := *p
	m.products[p.ID] = &cp
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func newTestService() *Service {
	svc := NewService(nil, newMockRepository())
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateProductDerivesSalePrice(t *testing.T) {
	svc := newTestService()

	p, err := svc.Create(context.Background(), CreateProductRequest{
		Code:          "CAN-001",
		Description:   "Caneta metal azul",
		PurchasePrice: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultMargin, p.Margin)
	assert.InDelta(t, 14.0, p.SalePrice, 1e-9)
}

func TestCreateProductCustomMargin(t *testing.T) {
	svc := newTestService()

	margin := 25.0
	p, err := svc.Create(context.Background(), CreateProductRequest{
		Code:          "CAN-002",
		Description:   "Caneta plastica",
		PurchasePrice: 8,
		Margin:        &margin,
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, p.SalePrice, 1e-9)
}

func TestCreateProductExplicitSalePriceWins(t *testing.T) {
	svc := newTestService()

	sale := 19.9
	p, err := svc.Create(context.Background(), CreateProductRequest{
		Code:          "CAN-003",
		Description:   "Caneta gravada",
		PurchasePrice: 10,
		SalePrice:     &sale,
	})
	require.NoError(t, err)
	assert.Equal(t, 19.9, p.SalePrice)
}

func TestUpdateProductRederivesSalePrice(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, CreateProductRequest{
		Code:          "CAN-004",
		Description:   "Caneta",
		PurchasePrice: 10,
	})
	require.NoError(t, err)

	purchase := 20.0
	got, err := svc.Update(ctx, p.ID, UpdateProductRequest{PurchasePrice: &purchase})
	require.NoError(t, err)
	assert.InDelta(t, 28.0, got.SalePrice, 1e-9)

	// An explicit sale price is kept as given.
	sale := 35.0
	got, err = svc.Update(ctx, p.ID, UpdateProductRequest{SalePrice: &sale})
	require.NoError(t, err)
	assert.Equal(t, 35.0, got.SalePrice)
}
