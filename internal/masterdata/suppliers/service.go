package suppliers

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Repository is the persistence surface for suppliers.
type Repository interface {
	NextCode(ctx context.Context) (string, error)
	Create(ctx context.Context, s *Supplier) (int64, error)
	Get(ctx context.Context, id int64) (*Supplier, error)
	List(ctx context.Context, category string) ([]Supplier, error)
	Update(ctx context.Context, s *Supplier) error
	Delete(ctx context.Context, id int64) error
}

// Service implements supplier master data operations.
type Service struct {
	logger *slog.Logger
	repo   Repository
	now    func() time.Time
}

// NewService wires the supplier service.
func NewService(logger *slog.Logger, repo Repository) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{logger: logger, repo: repo, now: time.Now}
}

// Create registers a supplier with an assigned code, active by default.
func (s *Service) Create(ctx context.Context, req CreateSupplierRequest) (*Supplier, error) {
	code, err := s.repo.NextCode(ctx)
	if err != nil {
		return nil, fmt.Errorf("next supplier code: %w", err)
	}

	supplier := &Supplier{
		Code:           code,
		Category:       req.Category,
		LegalName:      req.LegalName,
		TradeName:      req.TradeName,
		TaxID:          req.TaxID,
		StateTaxNumber: req.StateTaxNumber,
		PostalCode:     req.PostalCode,
		Street:         req.Street,
		Number:         req.Number,
		Complement:     req.Complement,
		District:       req.District,
		City:           req.City,
		State:          req.State,
		ContactName:    req.ContactName,
		Phone:          req.Phone,
		Active:         true,
		CreatedAt:      s.now().UTC(),
	}

	id, err := s.repo.Create(ctx, supplier)
	if err != nil {
		return nil, fmt.Errorf("create supplier: %w", err)
	}
	supplier.ID = id
	return supplier, nil
}

// Get loads one supplier.
func (s *Service) Get(ctx context.Context, id int64) (*Supplier, error) {
	return s.repo.Get(ctx, id)
}

// List returns suppliers, optionally restricted to a category.
func (s *Service) List(ctx context.Context, category string) ([]Supplier, error) {
	return s.repo.List(ctx, category)
}

// Update applies partial edits.
func (s *Service) Update(ctx context.Context, id int64, req UpdateSupplierRequest) (*Supplier, error) {
	supplier, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get supplier: %w", err)
	}

	if req.Category != nil {
		supplier.Category = *req.Category
	}
	if req.LegalName != nil {
		supplier.LegalName = *req.LegalName
	}
	if req.TradeName != nil {
		supplier.TradeName = *req.TradeName
	}
	if req.TaxID != nil {
		supplier.TaxID = *req.TaxID
	}
	if req.StateTaxNumber != nil {
		supplier.StateTaxNumber = *req.StateTaxNumber
	}
	if req.PostalCode != nil {
		supplier.PostalCode = *req.PostalCode
	}
	if req.Street != nil {
		supplier.Street = *req.Street
	}
	if req.Number != nil {
		supplier.Number = *req.Number
	}
	if req.Complement != nil {
		supplier.Complement = *req.Complement
	}
	if req.District != nil {
		supplier.District = *req.District
	}
	if req.City != nil {
		supplier.City = *req.City
	}
	if req.State != nil {
		supplier.State = *req.State
	}
	if req.ContactName != nil {
		supplier.ContactName = *req.ContactName
	}
	if req.Phone != nil {
		supplier.Phone = *req.Phone
	}
	if req.Active != nil {
		supplier.Active = *req.Active
	}

	if err := s.repo.Update(ctx, supplier); err != nil {
		return nil, fmt.Errorf("update supplier: %w", err)
	}
	return supplier, nil
}

// Delete removes a supplier record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}
