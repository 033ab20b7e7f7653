package products

import "time"

// DefaultMargin is applied when a product is registered without one.
const DefaultMargin = 40.0

// Product is a catalog entry. Documents snapshot code, description and
// prices into their line items, so catalog edits never rewrite history.
type Product struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	Description   string    `json:"description"`
	PurchasePrice float64   `json:"purchase_price"`
	SalePrice     float64   `json:"sale_price"`
	Margin        float64   `json:"margin"`
	Supplier      string    `json:"supplier,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// CreateProductRequest registers a product. When the sale price is omitted
// it is derived from the purchase price and margin.
type CreateProductRequest struct {
	Code          string   `json:"code" validate:"required"`
	Description   string   `json:"description" validate:"required"`
	PurchasePrice float64  `json:"purchase_price" validate:"required,gt=0"`
	SalePrice     *float64 `json:"sale_price" validate:"omitempty,gt=0"`
	Margin        *float64 `json:"margin" validate:"omitempty,gte=0"`
	Supplier      string   `json:"supplier"`
}

// UpdateProductRequest applies partial edits. Omitting the sale price while
// changing the purchase price or margin re-derives it.
type UpdateProductRequest struct {
	Description   *string  `json:"description" validate:"omitempty,min=1"`
	PurchasePrice *float64 `json:"purchase_price" validate:"omitempty,gt=0"`
	SalePrice     *float64 `json:"sale_price" validate:"omitempty,gt=0"`
	Margin        *float64 `json:"margin" validate:"omitempty,gte=0"`
	Supplier      *string  `json:"supplier"`
}
