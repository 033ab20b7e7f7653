package finance

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Repository is the persistence surface for the cashbox.
type Repository interface {
	Balance(ctx context.Context) (*Cashbox, error)
	Apply(ctx context.Context, m Movement) (*Cashbox, error)
	RecentMovements(ctx context.Context, limit int) ([]Movement, error)
}

// Service implements cashbox operations. The balance may go negative:
// the cashbox mirrors whatever actually happened, it does not gatekeep.
type Service struct {
	logger *slog.Logger
	repo   Repository
}

// NewService wires the finance service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo}
}

// CashboxView is the balance plus its latest movements.
type CashboxView struct {
	Cashbox
	Movements []Movement `json:"movements"`
}

// Balance returns the current balance with recent movement history.
func (s *Service) Balance(ctx context.Context, historyLimit int) (*CashboxView, error) {
	box, err := s.repo.Balance(ctx)
	if err != nil {
		return nil, fmt.Errorf("cashbox balance: %w", err)
	}
	movs, err := s.repo.RecentMovements(ctx, historyLimit)
	if err != nil {
		return nil, fmt.Errorf("cashbox movements: %w", err)
	}
	return &CashboxView{Cashbox: *box, Movements: movs}, nil
}

// MovementRequest records a manual credit or debit.
type MovementRequest struct {
	Kind        string  `json:"kind" validate:"required,oneof=credit debit"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
	ReferenceID string  `json:"reference_id"`
}

// Record applies a movement and returns the updated balance.
func (s *Service) Record(ctx context.Context, req MovementRequest) (*Cashbox, error) {
	kind := MovementKind(req.Kind)
	if !kind.Valid() {
		return nil, fmt.Errorf("movement kind %q: %w", req.Kind, httpx.ErrValidation)
	}
	box, err := s.repo.Apply(ctx, Movement{
		Kind:        kind,
		Amount:      req.Amount,
		Description: req.Description,
		ReferenceID: req.ReferenceID,
	})
	if err != nil {
		return nil, fmt.Errorf("record movement: %w", err)
	}
	s.logger.Info("cashbox movement",
		slog.String("kind", req.Kind),
		slog.Float64("amount", req.Amount),
		slog.Float64("balance", box.Balance))
	return box, nil
}

// Credit adds funds to the cashbox on behalf of another domain.
func (s *Service) Credit(ctx context.Context, amount float64, description, referenceID string) error {
	_, err := s.Record(ctx, MovementRequest{
		Kind:        string(MovementCredit),
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
	})
	return err
}

// Debit removes funds from the cashbox on behalf of another domain.
func (s *Service) Debit(ctx context.Context, amount float64, description, referenceID string) error {
	_, err := s.Record(ctx, MovementRequest{
		Kind:        string(MovementDebit),
		Amount:      amount,
		Description: description,
		ReferenceID: referenceID,
	})
	return err
}
