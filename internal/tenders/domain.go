// Package tenders tracks public-procurement participations and their
// milestone timeline.
package tenders

import "time"

// Status is the outcome stage of a tender participation. The scheduling
// labels and the result labels share one space; won, lost and awaiting_result
// are the mutually exclusive results win-rate reporting reads.
type Status string

const (
	StatusScheduled      Status = "scheduled"
	StatusInProgress     Status = "in_progress"
	StatusWon            Status = "won"
	StatusLost           Status = "lost"
	StatusAwaitingResult Status = "awaiting_result"
	StatusCancelled      Status = "cancelled"
)

var statuses = map[Status]struct{}{
	StatusScheduled:      {},
	StatusInProgress:     {},
	StatusWon:            {},
	StatusLost:           {},
	StatusAwaitingResult: {},
	StatusCancelled:      {},
}

// Valid reports whether the label belongs to the tender status set.
func (s Status) Valid() bool {
	_, ok := statuses[s]
	return ok
}

// CanTransitionTo reports whether the jump to next is allowed. All valid
// labels are freely reachable; a cancelled tender can be rescheduled and a
// result can be corrected.
func (s Status) CanTransitionTo(next Status) bool {
	return next.Valid()
}

// IsResult reports whether the label is one of the exclusive result values.
func (s Status) IsResult() bool {
	return s == StatusWon || s == StatusLost || s == StatusAwaitingResult
}

// EventStatus is the state of one milestone event, independent of the
// parent tender's outcome.
type EventStatus string

const (
	EventStatusPending EventStatus = "pending"
	EventStatusDone    EventStatus = "done"
	EventStatusLate    EventStatus = "late"
)

// Valid reports whether the label belongs to the event status set.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPending, EventStatusDone, EventStatusLate:
		return true
	}
	return false
}

// Event is one dated milestone on a tender's timeline (proposal deadline,
// public session, appeal window). Events are edited and deleted without ever
// touching the parent's outcome status.
type Event struct {
	ID          string      `json:"id"`
	Date        time.Time   `json:"date"`
	Time        string      `json:"time,omitempty"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Status      EventStatus `json:"status"`
}

// Tender is one public-tender participation.
type Tender struct {
	ID             int64     `json:"id"`
	Number         string    `json:"number"`
	Agency         string    `json:"agency"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	SessionDate    time.Time `json:"session_date"`
	SessionTime    string    `json:"session_time,omitempty"`
	Products       string    `json:"products"`
	EstimatedValue float64   `json:"estimated_value"`
	Profit         float64   `json:"profit"`
	Status         Status    `json:"status"`
	Events         []Event   `json:"events"`
	CreatedAt      time.Time `json:"created_at"`
}
