package sales

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// Repository is the persistence surface the sales service depends on.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error

	NextOrderNumber(ctx context.Context) (string, error)
	CreateOrder(ctx context.Context, o *Order) (int64, error)
	GetOrder(ctx context.Context, id int64) (*Order, error)
	ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	UpdateOrder(ctx context.Context, o *Order) error
	UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) error
	DeleteOrder(ctx context.Context, id int64) error

	NextQuoteNumber(ctx context.Context) (string, error)
	CreateQuote(ctx context.Context, q *Quote) (int64, error)
	GetQuote(ctx context.Context, id int64) (*Quote, error)
	ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error)
	UpdateQuote(ctx context.Context, q *Quote) error
	DeleteQuote(ctx context.Context, id int64) error
	MarkExpiredQuotes(ctx context.Context, asOf time.Time) (int64, error)
}

// TxRepository is the subset of Repository available inside a transaction.
// Conversion needs both sides committed atomically so a concurrent reader
// never observes a converted quote without its order.
type TxRepository interface {
	CreateOrder(ctx context.Context, o *Order) (int64, error)
	// MarkQuoteConverted flips an open quote to converted and fails with
	// ErrInvalidState when the quote is no longer open, guarding against a
	// concurrent conversion that won the race.
	MarkQuoteConverted(ctx context.Context, id int64) error
}

// CustomerDirectory resolves customer snapshots at document creation time.
type CustomerDirectory interface {
	CustomerName(ctx context.Context, id int64) (string, error)
}

// Invalidator drops derived report caches after a write.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service implements order and quote operations.
type Service struct {
	logger      *slog.Logger
	repo        Repository
	customers   CustomerDirectory
	invalidator Invalidator
	now         func() time.Time
}

// NewService wires the sales service.
func NewService(logger *slog.Logger, repo Repository, customers CustomerDirectory, invalidator Invalidator) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		logger:      logger,
		repo:        repo,
		customers:   customers,
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

// CreateOrder prices the line items, derives totals and persists the order.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	name, err := s.customers.CustomerName(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("verify customer: %w", err)
	}

	number, err := s.repo.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	misc := MiscCharge{Amount: req.MiscAmount, Description: req.MiscDescription, PassThrough: req.MiscPassThrough}
	items, totals := priceItems(toItems(req.Items), req.Freight, misc, 0)

	order := &Order{
		Number:        number,
		CreatedAt:     s.now().UTC(),
		CustomerID:    req.CustomerID,
		CustomerName:  name,
		Salesperson:   req.Salesperson,
		PaymentMethod: req.PaymentMethod,
		Channel:       req.Channel,
		Items:         items,
		Freight:       req.Freight,
		Misc:          misc,
		Status:        OrderStatusPending,
		Totals:        totals,
	}

	id, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	order.ID = id
	s.bump(ctx)
	return order, nil
}

// GetOrder loads an order by id.
func (s *Service) GetOrder(ctx context.Context, id int64) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

// ListOrders returns orders matching the filter plus the total count.
func (s *Service) ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.ListOrders(ctx, req)
}

// UpdateOrder applies partial edits and recomputes totals from the full
// snapshot. Orders are editable in any status.
func (s *Service) UpdateOrder(ctx context.Context, id int64, req UpdateOrderRequest) (*Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if req.Salesperson != nil {
		order.Salesperson = *req.Salesperson
	}
	if req.PaymentMethod != nil {
		order.PaymentMethod = *req.PaymentMethod
	}
	if req.Channel != nil {
		order.Channel = *req.Channel
	}
	if req.Items != nil {
		order.Items = toItems(*req.Items)
	}
	if req.Freight != nil {
		order.Freight = *req.Freight
	}
	if req.MiscAmount != nil {
		order.Misc.Amount = *req.MiscAmount
	}
	if req.MiscDescription != nil {
		order.Misc.Description = *req.MiscDescription
	}
	if req.MiscPassThrough != nil {
		order.Misc.PassThrough = *req.MiscPassThrough
	}

	order.Items, order.Totals = priceItems(order.Items, order.Freight, order.Misc, 0)

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	s.bump(ctx)
	return order, nil
}

// UpdateOrderStatus moves an order to another status label.
func (s *Service) UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) (*Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if !order.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("order status %q: %w", status, httpx.ErrValidation)
	}
	if err := s.repo.UpdateOrderStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	order.Status = status
	s.bump(ctx)
	return order, nil
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id int64) error {
	if err := s.repo.DeleteOrder(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// CreateQuote prices the line items and persists an open quote.
func (s *Service) CreateQuote(ctx context.Context, req CreateQuoteRequest) (*Quote, error) {
	name, err := s.customers.CustomerName(ctx, req.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("verify customer: %w", err)
	}

	number, err := s.repo.NextQuoteNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate quote number: %w", err)
	}

	remarks := DefaultQuoteRemarks
	if req.Remarks != nil {
		remarks = *req.Remarks
	}

	items, totals := priceItems(toItems(req.Items), req.Freight, MiscCharge{}, req.Discount)

	quote := &Quote{
		Number:        number,
		CreatedAt:     s.now().UTC(),
		CustomerID:    req.CustomerID,
		CustomerName:  name,
		PaymentMethod: req.PaymentMethod,
		DeliveryTerm:  req.DeliveryTerm,
		FreightPayer:  req.FreightPayer,
		Remarks:       remarks,
		ValidityDays:  req.ValidityDays,
		Items:         items,
		Freight:       req.Freight,
		Discount:      req.Discount,
		Status:        QuoteStatusOpen,
		Totals:        totals,
	}

	id, err := s.repo.CreateQuote(ctx, quote)
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}
	quote.ID = id
	s.bump(ctx)
	return quote, nil
}

// GetQuote loads a quote by id.
func (s *Service) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	return s.repo.GetQuote(ctx, id)
}

// ListQuotes returns quotes matching the filter plus the total count.
func (s *Service) ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	return s.repo.ListQuotes(ctx, req)
}

// UpdateQuote applies partial edits to an open quote and recomputes totals.
// Converted and expired quotes are frozen.
func (s *Service) UpdateQuote(ctx context.Context, id int64, req UpdateQuoteRequest) (*Quote, error) {
	quote, err := s.repo.GetQuote(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote.Status != QuoteStatusOpen {
		return nil, fmt.Errorf("quote %s is %s: %w", quote.Number, quote.Status, httpx.ErrInvalidState)
	}

	if req.PaymentMethod != nil {
		quote.PaymentMethod = *req.PaymentMethod
	}
	if req.DeliveryTerm != nil {
		quote.DeliveryTerm = *req.DeliveryTerm
	}
	if req.FreightPayer != nil {
		quote.FreightPayer = *req.FreightPayer
	}
	if req.Remarks != nil {
		quote.Remarks = *req.Remarks
	}
	if req.ValidityDays != nil {
		quote.ValidityDays = *req.ValidityDays
	}
	if req.Items != nil {
		quote.Items = toItems(*req.Items)
	}
	if req.Freight != nil {
		quote.Freight = *req.Freight
	}
	if req.Discount != nil {
		quote.Discount = *req.Discount
	}

	quote.Items, quote.Totals = priceItems(quote.Items, quote.Freight, MiscCharge{}, quote.Discount)

	if err := s.repo.UpdateQuote(ctx, quote); err != nil {
		return nil, fmt.Errorf("update quote: %w", err)
	}
	s.bump(ctx)
	return quote, nil
}

// DeleteQuote removes a quote.
func (s *Service) DeleteQuote(ctx context.Context, id int64) error {
	if err := s.repo.DeleteQuote(ctx, id); err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// ConvertQuote turns an open quote into an order. The quote is marked
// converted and a new order is materialized from a value copy of its items,
// both inside one transaction. The transition is one-way; there is no revert.
func (s *Service) ConvertQuote(ctx context.Context, quoteID int64, req ConvertQuoteRequest) (*Order, error) {
	quote, err := s.repo.GetQuote(ctx, quoteID)
	if err != nil {
		return nil, fmt.Errorf("get quote: %w", err)
	}
	if quote.Status != QuoteStatusOpen {
		return nil, fmt.Errorf("quote %s is %s: %w", quote.Number, quote.Status, httpx.ErrInvalidState)
	}

	number, err := s.repo.NextOrderNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("generate order number: %w", err)
	}

	channel := req.Channel
	if channel == "" {
		channel = ChannelEndConsumer
	}

	// Freight and discount are quote-level commercial terms, not carried
	// into the materialized order; the order starts with its own charges.
	items, totals := priceItems(cloneItems(quote.Items), 0, MiscCharge{}, 0)

	order := &Order{
		Number:        number,
		CreatedAt:     s.now().UTC(),
		CustomerID:    quote.CustomerID,
		CustomerName:  quote.CustomerName,
		Salesperson:   req.Salesperson,
		PaymentMethod: quote.PaymentMethod,
		Channel:       channel,
		Items:         items,
		Status:        OrderStatusPending,
		Totals:        totals,
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if err := tx.MarkQuoteConverted(ctx, quoteID); err != nil {
			return fmt.Errorf("mark quote converted: %w", err)
		}
		id, err := tx.CreateOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("materialize order: %w", err)
		}
		order.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.bump(ctx)
	return order, nil
}

// ExpireQuotes marks open quotes past their validity window as expired.
// Invoked by the background sweep.
func (s *Service) ExpireQuotes(ctx context.Context) (int64, error) {
	n, err := s.repo.MarkExpiredQuotes(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("expire quotes: %w", err)
	}
	if n > 0 {
		s.bump(ctx)
	}
	return n, nil
}
