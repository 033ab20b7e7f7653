package products

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Repository is the persistence surface for the catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) (int64, error)
	Get(ctx context.Context, id int64) (*Product, error)
	List(ctx context.Context, search string) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}

// Service implements catalog operations.
type Service struct {
	logger *slog.Logger
	repo   Repository
	now    func() time.Time
}

// NewService wires the product service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo, now: time.Now}
}

func derivedPrice(purchase, margin float64) float64 {
	return purchase * (1 + margin/100)
}

// Create registers a product, deriving the sale price from the margin when
// none is given.
func (s *Service) Create(ctx context.Context, req CreateProductRequest) (*Product, error) {
	margin := DefaultMargin
	if req.Margin != nil {
		margin = *req.Margin
	}
	salePrice := derivedPrice(req.PurchasePrice, margin)
	if req.SalePrice != nil {
		salePrice = *req.SalePrice
	}

	product := &Product{
		Code:          req.Code,
		Description:   req.Description,
		PurchasePrice: req.PurchasePrice,
		SalePrice:     salePrice,
		Margin:        margin,
		Supplier:      req.Supplier,
		CreatedAt:     s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	product.ID = id
	return product, nil
}

// Get loads one product.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns products matching the optional search term.
func (s *Service) List(ctx context.Context, search string) ([]Product, error) {
	return s.repo.List(ctx, search)
}

// Update applies partial edits. When the purchase price or margin changes
// without an explicit sale price, the sale price is re-derived.
func (s *Service) Update(ctx context.Context, id int64, req UpdateProductRequest) (*Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.PurchasePrice != nil {
		product.PurchasePrice = *req.PurchasePrice
	}
	if req.Margin != nil {
		product.Margin = *req.Margin
	}
	if req.Supplier != nil {
		product.Supplier = *req.Supplier
	}
	switch {
	case req.SalePrice != nil:
		product.SalePrice = *req.SalePrice
	case req.PurchasePrice != nil || req.Margin != nil:
		product.SalePrice = derivedPrice(product.PurchasePrice, product.Margin)
	}

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return product, nil
}

// Delete removes a product. Existing line items keep their snapshots.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
