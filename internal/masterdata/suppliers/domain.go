package suppliers

import "time"

// Supplier is a vendor the business buys stock or services from.
type Supplier struct {
	ID             int64     `json:"id"`
	Code           string    `json:"code"`
	Category       string    `json:"category"`
	LegalName      string    `json:"legal_name"`
	TradeName      string    `json:"trade_name"`
	TaxID          string    `json:"tax_id"`
	StateTaxNumber string    `json:"state_tax_number,omitempty"`
	PostalCode     string    `json:"postal_code"`
	Street         string    `json:"street"`
	Number         string    `json:"number"`
	Complement     string    `json:"complement,omitempty"`
	District       string    `json:"district"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	ContactName    string    `json:"contact_name"`
	Phone          string    `json:"phone"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateSupplierRequest registers a supplier. The code is assigned.
type CreateSupplierRequest struct {
	Category       string `json:"category" validate:"required"`
	LegalName      string `json:"legal_name" validate:"required"`
	TradeName      string `json:"trade_name"`
	TaxID          string `json:"tax_id" validate:"required"`
	StateTaxNumber string `json:"state_tax_number"`
	PostalCode     string `json:"postal_code"`
	Street         string `json:"street"`
	Number         string `json:"number"`
	Complement     string `json:"complement"`
	District       string `json:"district"`
	City           string `json:"city"`
	State          string `json:"state" validate:"omitempty,len=2"`
	ContactName    string `json:"contact_name"`
	Phone          string `json:"phone"`
}

// UpdateSupplierRequest applies partial edits.
type UpdateSupplierRequest struct {
	Category       *string `json:"category" validate:"omitempty,min=1"`
	LegalName      *string `json:"legal_name" validate:"omitempty,min=1"`
	TradeName      *string `json:"trade_name"`
	TaxID          *string `json:"tax_id" validate:"omitempty,min=1"`
	StateTaxNumber *string `json:"state_tax_number"`
	PostalCode     *string `json:"postal_code"`
	Street         *string `json:"street"`
	Number         *string `json:"number"`
	Complement     *string `json:"complement"`
	District       *string `json:"district"`
	City           *string `json:"city"`
	State          *string `json:"state" validate:"omitempty,len=2"`
	ContactName    *string `json:"contact_name"`
	Phone          *string `json:"phone"`
	Active         *bool   `json:"active"`
}
