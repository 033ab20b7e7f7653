package expenses

import "time"

// CreateExpenseRequest registers a new expense.
type CreateExpenseRequest struct {
	Category    string    `json:"category" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Value       float64   `json:"value" validate:"required,gt=0"`
	IncurredAt  time.Time `json:"incurred_at" validate:"required"`
	DueAt       time.Time `json:"due_at" validate:"required"`
	Status      string    `json:"status" validate:"omitempty,oneof=pending paid"`
}

// UpdateExpenseRequest applies partial edits. Status moves through the
// dedicated status endpoint so the cashbox side effect cannot be skipped.
type UpdateExpenseRequest struct {
	Category    *string    `json:"category" validate:"omitempty,min=1"`
	Description *string    `json:"description" validate:"omitempty,min=1"`
	Value       *float64   `json:"value" validate:"omitempty,gt=0"`
	IncurredAt  *time.Time `json:"incurred_at"`
	DueAt       *time.Time `json:"due_at"`
}

// ListExpensesRequest filters the expense listing.
type ListExpensesRequest struct {
	Status   *Status
	Category string
	Limit    int
	Offset   int
}
