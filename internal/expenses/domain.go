package expenses

import "time"

// Status tracks whether an expense has been settled.
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Valid reports whether the status is a known value.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Expense is an operating cost the business incurred, independent of any
// single order. The reports module subtracts paid and pending expenses from
// gross profit to arrive at net profit.
type Expense struct {
	ID          int64     `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Value       float64   `json:"value"`
	IncurredAt  time.Time `json:"incurred_at"`
	DueAt       time.Time `json:"due_at"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
