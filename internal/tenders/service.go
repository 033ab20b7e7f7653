package tenders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Repository is the persistence surface the tender service depends on.
type Repository interface {
	Create(ctx context.Context, t *Tender) (int64, error)
	Get(ctx context.Context, id int64) (*Tender, error)
	List(ctx context.Context, req ListTendersRequest) ([]Tender, int, error)
	Update(ctx context.Context, t *Tender) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	UpdateEvents(ctx context.Context, id int64, events []Event) error
	Delete(ctx context.Context, id int64) error
}

// Invalidator drops derived report caches after a write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service implements tender participation operations.
type Service struct {
	logger      *slog.Logger
	repo        Repository
	invalidator Invalidator
	now         func() time.Time
	newEventID  func() string
}

// NewService wires the tender service.
func NewService(logger *slog.Logger, repo Repository, invalidator Invalidator) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:      logger,
		repo:        repo,
		invalidator: invalidator,
		now:         time.Now,
		newEventID:  func() string { return uuid.NewString() },
	}
}

func (s *Service) bump(ctx context.Context) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.Bump(ctx); err != nil {
		s.logger.Warn("report cache bump failed", slog.Any("error", err))
	}
}

// Create registers a new participation as scheduled.
func (s *Service) Create(ctx context.Context, req CreateTenderRequest) (*Tender, error) {
	tender := &Tender{
		Number:         req.Number,
		Agency:         req.Agency,
		City:           req.City,
		State:          req.State,
		SessionDate:    req.SessionDate,
		SessionTime:    req.SessionTime,
		Products:       req.Products,
		EstimatedValue: req.EstimatedValue,
		Profit:         req.Profit,
		Status:         StatusScheduled,
		Events:         []Event{},
		CreatedAt:      s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, tender)
	if err != nil {
		return nil, fmt.Errorf("create tender: %w", err)
	}
	tender.ID = id
	s.bump(ctx)
	return tender, nil
}

// Get loads one participation.
func (s *Service) Get(ctx context.Context, id int64) (*Tender, error) {
	return s.repo.Get(ctx, id)
}

// List returns participations matching the filter plus the total count.
func (s *Service) List(ctx context.Context, req ListTendersRequest) ([]Tender, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies partial edits to a participation.
func (s *Service) Update(ctx context.Context, id int64, req UpdateTenderRequest) (*Tender, error) {
	tender, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tender: %w", err)
	}

	if req.Number != nil {
		tender.Number = *req.Number
	}
	if req.Agency != nil {
		tender.Agency = *req.Agency
	}
	if req.City != nil {
		tender.City = *req.City
	}
	if req.State != nil {
		tender.State = *req.State
	}
	if req.SessionDate != nil {
		tender.SessionDate = *req.SessionDate
	}
	if req.SessionTime != nil {
		tender.SessionTime = *req.SessionTime
	}
	if req.Products != nil {
		tender.Products = *req.Products
	}
	if req.EstimatedValue != nil {
		tender.EstimatedValue = *req.EstimatedValue
	}
	if req.Profit != nil {
		tender.Profit = *req.Profit
	}

	if err := s.repo.Update(ctx, tender); err != nil {
		return nil, fmt.Errorf("update tender: %w", err)
	}
	s.bump(ctx)
	return tender, nil
}

// UpdateStatus moves a participation to another outcome label. Pending
// milestone events are left untouched: the timeline is its own state space.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Tender, error) {
	tender, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tender: %w", err)
	}
	if !tender.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("tender status %q: %w", status, httpx.ErrValidation)
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update tender status: %w", err)
	}
	tender.Status = status
	s.bump(ctx)
	return tender, nil
}

// Delete removes a participation and its timeline.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// AddEvent appends a milestone to the timeline.
func (s *Service) AddEvent(ctx context.Context, tenderID int64, req AddEventRequest) (*Tender, error) {
	tender, err := s.repo.Get(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("get tender: %w", err)
	}

	status := EventStatusPending
	if req.Status != "" {
		status = EventStatus(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("event status %q: %w", req.Status, httpx.ErrValidation)
		}
	}

	tender.Events = append(tender.Events, Event{
		ID:          s.newEventID(),
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Description: req.Description,
		Status:      status,
	})

	if err := s.repo.UpdateEvents(ctx, tenderID, tender.Events); err != nil {
		return nil, fmt.Errorf("add event: %w", err)
	}
	return tender, nil
}

// UpdateEventStatus sets the state of one milestone.
func (s *Service) UpdateEventStatus(ctx context.Context, tenderID int64, eventID string, status EventStatus) (*Tender, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("event status %q: %w", status, httpx.ErrValidation)
	}
	tender, err := s.repo.Get(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("get tender: %w", err)
	}

	found := false
	for i := range tender.Events {
		if tender.Events[i].ID == eventID {
			tender.Events[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("event %s: %w", eventID, httpx.ErrNotFound)
	}

	if err := s.repo.UpdateEvents(ctx, tenderID, tender.Events); err != nil {
		return nil, fmt.Errorf("update event status: %w", err)
	}
	return tender, nil
}

// RemoveEvent deletes one milestone from the timeline.
func (s *Service) RemoveEvent(ctx context.Context, tenderID int64, eventID string) (*Tender, error) {
	tender, err := s.repo.Get(ctx, tenderID)
	if err != nil {
		return nil, fmt.Errorf("get tender: %w", err)
	}

	events := tender.Events[:0:0]
	found := false
	for _, ev := range tender.Events {
		if ev.ID == eventID {
			found = true
			continue
		}
		events = append(events, ev)
	}
	if !found {
		return nil, fmt.Errorf("event %s: %w", eventID, httpx.ErrNotFound)
	}
	tender.Events = events

	if err := s.repo.UpdateEvents(ctx, tenderID, tender.Events); err != nil {
		return nil, fmt.Errorf("remove event: %w", err)
	}
	return tender, nil
}

// MarkOverdueEvents flips pending milestones whose date has passed to late.
// Invoked by the background sweep; parent outcomes are never touched.
func (s *Service) MarkOverdueEvents(ctx context.Context) (int, error) {
	all, _, err := s.repo.List(ctx, ListTendersRequest{Limit: -1})
	if err != nil {
		return 0, fmt.Errorf("list tenders: %w", err)
	}

	cutoff := s.now().UTC().Truncate(24 * time.Hour)
	marked := 0
	for i := range all {
		changed := false
		for j := range all[i].Events {
			ev := &all[i].Events[j]
			if ev.Status == EventStatusPending && ev.Date.Before(cutoff) {
				ev.Status = EventStatusLate
				changed = true
				marked++
			}
		}
		if changed {
			if err := s.repo.UpdateEvents(ctx, all[i].ID, all[i].Events); err != nil {
				return marked, fmt.Errorf("mark overdue events: %w", err)
			}
		}
	}
	return marked, nil
}
