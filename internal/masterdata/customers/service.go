package customers

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Repository is the persistence surface for customers.
type Repository interface {
	Create(ctx context.Context, c *Customer) (int64, error)
	Get(ctx context.Context, id int64) (*Customer, error)
	List(ctx context.Context, search string) ([]Customer, error)
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id int64) error
}

// Service implements customer master data operations.
type Service struct {
	logger *slog.Logger
	repo   Repository
	now    func() time.Time
}

// NewService wires the customer service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo, now: time.Now}
}

// Create registers a customer.
func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (*Customer, error) {
	customer := &Customer{
		Code:       req.Code,
		TaxID:      req.TaxID,
		Name:       req.Name,
		LegalName:  req.LegalName,
		TradeName:  req.TradeName,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		PostalCode: req.PostalCode,
		CreatedAt:  s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, customer)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	customer.ID = id
	return customer, nil
}

// Get loads one customer.
func (s *Service) Get(ctx context.Context, id int64) (*Customer, error) {
	return s.repo.Get(ctx, id)
}

// List returns customers matching the optional search term.
func (s *Service) List(ctx context.Context, search string) ([]Customer, error) {
	return s.repo.List(ctx, search)
}

// Update applies partial edits. The code is immutable once assigned.
func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (*Customer, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}

	if req.TaxID != nil {
		customer.TaxID = *req.TaxID
	}
	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.LegalName != nil {
		customer.LegalName = *req.LegalName
	}
	if req.TradeName != nil {
		customer.TradeName = *req.TradeName
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	if req.City != nil {
		customer.City = *req.City
	}
	if req.State != nil {
		customer.State = *req.State
	}
	if req.PostalCode != nil {
		customer.PostalCode = *req.PostalCode
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, fmt.Errorf("update customer: %w", err)
	}
	return customer, nil
}

// Delete removes a customer. Existing documents keep their name snapshot.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// CustomerName resolves a customer's display name for document snapshots.
func (s *Service) CustomerName(ctx context.Context, id int64) (string, error) {
	customer, err := s.repo.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return customer.Name, nil
}
