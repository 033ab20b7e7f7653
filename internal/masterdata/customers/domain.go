package customers

import "time"

// Customer is a registered buyer. Documents snapshot the name at creation
// time, so renaming a customer never rewrites history.
type Customer struct {
	ID         int64     `json:"id"`
	Code       string    `json:"code"`
	TaxID      string    `json:"tax_id"`
	Name       string    `json:"name"`
	LegalName  string    `json:"legal_name"`
	TradeName  string    `json:"trade_name"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateCustomerRequest registers a customer.
type CreateCustomerRequest struct {
	Code       string `json:"code" validate:"required"`
	TaxID      string `json:"tax_id" validate:"required"`
	Name       string `json:"name" validate:"required"`
	LegalName  string `json:"legal_name"`
	TradeName  string `json:"trade_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	State      string `json:"state" validate:"omitempty,len=2"`
	PostalCode string `json:"postal_code"`
}

// UpdateCustomerRequest applies partial edits.
type UpdateCustomerRequest struct {
	TaxID      *string `json:"tax_id" validate:"omitempty,min=1"`
	Name       *string `json:"name" validate:"omitempty,min=1"`
	LegalName  *string `json:"legal_name"`
	TradeName  *string `json:"trade_name"`
	Address    *string `json:"address"`
	City       *string `json:"city"`
	State      *string `json:"state" validate:"omitempty,len=2"`
	PostalCode *string `json:"postal_code"`
}
