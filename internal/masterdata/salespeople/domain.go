package salespeople

import "time"

// Salesperson is a seller that orders and quotes reference by name.
type Salesperson struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSalespersonRequest registers a seller. The code is assigned.
type CreateSalespersonRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone"`
}

// UpdateSalespersonRequest applies partial edits.
type UpdateSalespersonRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=1"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Phone  *string `json:"phone"`
	Active *bool   `json:"active"`
}
