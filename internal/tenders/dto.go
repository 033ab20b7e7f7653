package tenders

import "time"

// CreateTenderRequest is the payload for registering a participation.
type CreateTenderRequest struct {
	Number         string    `json:"number" validate:"required"`
	Agency         string    `json:"agency" validate:"required"`
	City           string    `json:"city" validate:"required"`
	State          string    `json:"state" validate:"required,len=2"`
	SessionDate    time.Time `json:"session_date" validate:"required"`
	SessionTime    string    `json:"session_time"`
	Products       string    `json:"products"`
	EstimatedValue float64   `json:"estimated_value" validate:"gte=0"`
	Profit         float64   `json:"profit" validate:"gte=0"`
}

// UpdateTenderRequest replaces the editable fields of a participation.
type UpdateTenderRequest struct {
	Number         *string    `json:"number"`
	Agency         *string    `json:"agency"`
	City           *string    `json:"city"`
	State          *string    `json:"state" validate:"omitempty,len=2"`
	SessionDate    *time.Time `json:"session_date"`
	SessionTime    *string    `json:"session_time"`
	Products       *string    `json:"products"`
	EstimatedValue *float64   `json:"estimated_value" validate:"omitempty,gte=0"`
	Profit         *float64   `json:"profit" validate:"omitempty,gte=0"`
}

// ListTendersRequest filters the participation listing.
type ListTendersRequest struct {
	Status   *Status
	City     string
	DateFrom time.Time
	DateTo   time.Time
	Limit    int
	Offset   int
}

// AddEventRequest appends a milestone to a tender's timeline.
type AddEventRequest struct {
	Date        time.Time `json:"date" validate:"required"`
	Time        string    `json:"time"`
	Type        string    `json:"type" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Status      string    `json:"status"`
}
