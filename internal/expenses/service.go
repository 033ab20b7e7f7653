package expenses

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Repository is the persistence surface the expense service depends on.
type Repository interface {
	Create(ctx context.Context, e *Expense) (int64, error)
	Get(ctx context.Context, id int64) (*Expense, error)
	List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error)
	Update(ctx context.Context, e *Expense) error
	UpdateStatus(ctx context.Context, id int64, status Status) error
	Delete(ctx context.Context, id int64) error
}

// Ledger is the cashbox surface used when an expense is settled.
type Ledger interface {
	Debit(ctx context.Context, amount float64, description, referenceID string) error
}

// Invalidator drops derived report caches after a write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service implements expense operations.
type Service struct {
	logger      *slog.Logger
	repo        Repository
	ledger      Ledger
	invalidator Invalidator
	now         func() time.Time
}

// NewService wires the expense service.
func NewService(logger *slog.Logger, repo Repository, ledger Ledger, invalidator Invalidator) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:      logger,
		repo:        repo,
		ledger:      ledger,
		invalidator: invalidator,
		now:         time.Now,
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

// Create registers an expense, pending unless stated otherwise.
func (s *Service) Create(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	status := StatusPending
	if req.Status != "" {
		status = Status(req.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("expense status %q: %w", req.Status, httpx.ErrValidation)
		}
	}

	expense := &Expense{
		Category:    req.Category,
		Description: req.Description,
		Value:       req.Value,
		IncurredAt:  req.IncurredAt,
		DueAt:       req.DueAt,
		Status:      status,
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	expense.ID = id
	s.bump(ctx)
	return expense, nil
}

// Get loads one expense.
func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

// List returns expenses matching the filter plus the total count.
func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	return s.repo.List(ctx, req)
}

// Update applies partial edits.
func (s *Service) Update(ctx context.Context, id int64, req UpdateExpenseRequest) (*Expense, error) {
	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}

	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Description != nil {
		expense.Description = *req.Description
	}
	if req.Value != nil {
		expense.Value = *req.Value
	}
	if req.IncurredAt != nil {
		expense.IncurredAt = *req.IncurredAt
	}
	if req.DueAt != nil {
		expense.DueAt = *req.DueAt
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	s.bump(ctx)
	return expense, nil
}

// UpdateStatus moves an expense between pending and paid. The first move to
// paid debits the cashbox; moving back and forth does not debit twice.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Expense, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("expense status %q: %w", status, httpx.ErrValidation)
	}

	expense, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get expense: %w", err)
	}
	settled := expense.Status != StatusPaid && status == StatusPaid

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update expense status: %w", err)
	}
	expense.Status = status

	if settled && s.ledger != nil {
		ref := fmt.Sprintf("expense:%d", id)
		if err := s.ledger.Debit(ctx, expense.Value, expense.Description, ref); err != nil {
			s.logger.Error("cashbox debit for settled expense failed",
				slog.Int64("expense_id", id), slog.Any("error", err))
		}
	}

	s.bump(ctx)
	return expense, nil
}

// Delete removes an expense.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}
