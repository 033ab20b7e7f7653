package finance

import "time"

// MovementKind says which way a cashbox movement goes.
type MovementKind string

const (
	MovementCredit MovementKind = "credit"
	MovementDebit  MovementKind = "debit"
)

// Valid reports whether the kind is one we accept.
func (k MovementKind) Valid() bool {
	return k == MovementCredit || k == MovementDebit
}

// Cashbox is the single company cash balance.
type Cashbox struct {
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Movement is one recorded change to the cashbox.
type Movement struct {
	ID          int64        `json:"id"`
	Kind        MovementKind `json:"kind"`
	Amount      float64      `json:"amount"`
	Description string       `json:"description"`
	ReferenceID string       `json:"reference_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}
