package salespeople

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Repository is the persistence surface for sellers.
type Repository interface {
	NextCode(ctx context.Context) (string, error)
	Create(ctx context.Context, sp *Salesperson) (int64, error)
	Get(ctx context.Context, id int64) (*Salesperson, error)
	List(ctx context.Context, activeOnly bool) ([]Salesperson, error)
	Update(ctx context.Context, sp *Salesperson) error
	Delete(ctx context.Context, id int64) error
}

// Service implements seller master data operations.
type Service struct {
	logger *slog.Logger
	repo   Repository
	now    func() time.Time
}

// NewService wires the salesperson service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo, now: time.Now}
}

// Create registers a seller with an assigned code, active by default.
func (s *Service) Create(ctx context.Context, req CreateSalespersonRequest) (*Salesperson, error) {
	code, err := s.repo.NextCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("next salesperson code: %w", err)
	}

	sp := &Salesperson{
		Code:      code,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Active:    true,
		CreatedAt: s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, sp)
	if err != nil {
		return nil, fmt.Errorf("create salesperson: %w", err)
	}
	sp.ID = id
	return sp, nil
}

// Get loads one seller.
func (s *Service) Get(ctx context.Context, id int64) (*Salesperson, error) {
	return s.repo.Get(ctx, id)
}

// List returns sellers, optionally only the active ones.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]Salesperson, error) {
	return s.repo.List(ctx, activeOnly)
}

// Update applies partial edits. Deactivated sellers keep their history.
func (s *Service) Update(ctx context.Context, id int64, req UpdateSalespersonRequest) (*Salesperson, error) {
	sp, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get salesperson: %w", err)
	}

	if req.Name != nil {
		sp.Name = *req.Name
	}
	if req.Email != nil {
		sp.Email = *req.Email
	}
	if req.Phone != nil {
		sp.Phone = *req.Phone
	}
	if req.Active != nil {
		sp.Active = *req.Active
	}

	if err := s.repo.Update(ctx, sp); err != nil {
		return nil, fmt.Errorf("update salesperson: %w", err)
	}
	return sp, nil
}

// Delete removes a seller record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
