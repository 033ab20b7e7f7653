package sales

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

type mockRepository struct {
	orders      map[int64]*Order
	quotes      map[int64]*Quote
	nextOrderID int64
	nextQuoteID int64
	orderSeq    int64
	quoteSeq    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		orders:      make(map[int64]*Order),
		quotes:      make(map[int64]*Quote),
		nextOrderID: 1,
		nextQuoteID: 1,
	}
}

func (m *mockRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &mockTxRepository{mock: m})
}

func (m *mockRepository) NextOrderNumber(ctx context.Context) (string, error) {
	m.orderSeq++
	return fmt.Sprintf("PED-%06d", m.orderSeq), nil
}

func (m *mockRepository) NextQuoteNumber(ctx context.Context) (string, error) {
	m.quoteSeq++
	return fmt.Sprintf("ORC-%06d", m.quoteSeq), nil
}

func (m *mockRepository) CreateOrder(ctx context.Context, o *Order) (int64, error) {
	id := m.nextOrderID
	m.nextOrderID++
	stored := *o
	stored.ID = id
	stored.Items = append([]LineItem(nil), o.Items...)
	m.orders[id] = &stored
	return id, nil
}

func (m *mockRepository) GetOrder(ctx context.Context, id int64) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *o
	cp.Items = append([]LineItem(nil), o.Items...)
	return &cp, nil
}

func (m *mockRepository) ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range m.orders {
		if req.Status != nil && o.Status != *req.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (m *mockRepository) UpdateOrder(ctx context.Context, o *Order) error {
	if _, ok := m.orders[o.ID]; !ok {
		return httpx.ErrNotFound
	}
	stored := *o
	stored.Items = append([]LineItem(nil), o.Items...)
	m.orders[o.ID] = &stored
	return nil
}

func (m *mockRepository) UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *mockRepository) DeleteOrder(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockRepository) CreateQuote(ctx context.Context, q *Quote) (int64, error) {
	id := m.nextQuoteID
	m.nextQuoteID++
	stored := *q
	stored.ID = id
	stored.Items = append([]LineItem(nil), q.Items...)
	m.quotes[id] = &stored
	return id, nil
}

func (m *mockRepository) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	cp := *q
	cp.Items = append([]LineItem(nil), q.Items...)
	return &cp, nil
}

func (m *mockRepository) ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var out []Quote
	for _, q := range m.quotes {
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		out = append(out, *q)
	}
	return out, len(out), nil
}

func (m *mockRepository) UpdateQuote(ctx context.Context, q *Quote) error {
	if _, ok := m.quotes[q.ID]; !ok {
		return httpx.ErrNotFound
	}
	stored := *q
	stored.Items = append([]LineItem(nil), q.Items...)
	m.quotes[q.ID] = &stored
	return nil
}

func (m *mockRepository) DeleteQuote(ctx context.Context, id int64) error {
	if _, ok := m.quotes[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.quotes, id)
	return nil
}

func (m *mockRepository) MarkExpiredQuotes(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	for _, q := range m.quotes {
		if q.Status == QuoteStatusOpen && q.ExpiresAt().Before(asOf) {
			q.Status = QuoteStatusExpired
			n++
		}
	}
	return n, nil
}

type mockTxRepository struct {
	mock *mockRepository
}

func (t *mockTxRepository) CreateOrder(ctx context.Context, o *Order) (int64, error) {
	return t.mock.CreateOrder(ctx, o)
}

func (t *mockTxRepository) MarkQuoteConverted(ctx context.Context, id int64) error {
	q, ok := t.mock.quotes[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if q.Status != QuoteStatusOpen {
		return fmt.Errorf("quote %d not open: %w", id, httpx.ErrInvalidState)
	}
	q.Status = QuoteStatusConverted
	return nil
}

type mockDirectory struct {
	names map[int64]string
}

func (d *mockDirectory) CustomerName(ctx context.Context, id int64) (string, error) {
	name, ok := d.names[id]
	if !ok {
		return "", httpx.ErrNotFound
	}
	return name, nil
}

type countingInvalidator struct {
	bumps int
}

func (c *countingInvalidator) Bump(ctx context.Context) error {
	c.bumps++
	return nil
}

func newTestService() (*Service, *mockRepository, *countingInvalidator) {
	repo := newMockRepository()
	inv := &countingInvalidator{}
	dir := &mockDirectory{names: map[int64]string{1: "Prefeitura de Salto", 2: "Brindes Ltda"}}
	svc := NewService(nil, repo, dir, inv)
	return svc, repo, inv
}

func TestCreateOrderComputesTotals(t *testing.T) {
	svc, _, inv := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:    1,
		Salesperson:   "Maria",
		PaymentMethod: "pix",
		Channel:       ChannelResale,
		Items: []LineItemRequest{{
			ProductID: 7, Quantity: 2, UnitCost: 10, UnitSale: 20, MiscExpense: 1,
			Customized: true, CustomizationType: "laser", CustomValue: 5, PassThrough: true,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, "PED-000001", order.Number)
	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, "Prefeitura de Salto", order.CustomerName)
	assert.InDelta(t, 50.0, order.Totals.Revenue, 1e-9)
	assert.InDelta(t, 20.0, order.Totals.Cost, 1e-9)
	assert.InDelta(t, 28.0, order.Totals.GrossProfit, 1e-9)
	assert.InDelta(t, 28.0, order.Items[0].LineProfit, 1e-9)
	assert.Equal(t, 1, inv.bumps)
}

func TestCreateOrderUnknownCustomer(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CreateOrder(context.Background(), CreateOrderRequest{
		CustomerID:    99,
		PaymentMethod: "pix",
		Channel:       ChannelEndConsumer,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitSale: 10}},
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateOrderRecomputesTotals(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:    1,
		PaymentMethod: "pix",
		Channel:       ChannelEndConsumer,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitCost: 10, UnitSale: 15}},
	})
	require.NoError(t, err)

	newItems := []LineItemRequest{{ProductID: 1, Quantity: 3, UnitCost: 10, UnitSale: 15}}
	freight := 20.0
	updated, err := svc.UpdateOrder(ctx, order.ID, UpdateOrderRequest{Items: &newItems, Freight: &freight})
	require.NoError(t, err)

	assert.InDelta(t, 45.0, updated.Totals.Revenue, 1e-9)
	assert.InDelta(t, 30.0, updated.Totals.Cost, 1e-9)
	assert.InDelta(t, 65.0, updated.Totals.NetTotal, 1e-9)
}

func TestOrderStatusJumpsFreely(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, CreateOrderRequest{
		CustomerID:    1,
		PaymentMethod: "pix",
		Channel:       ChannelEndConsumer,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitSale: 10}},
	})
	require.NoError(t, err)

	// Forward to the end, then straight back: both directions are allowed.
	for _, st := range []OrderStatus{OrderStatusFinished, OrderStatusPending, OrderStatusInEngraving} {
		updated, err := svc.UpdateOrderStatus(ctx, order.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, updated.Status)
	}
}

func TestConvertQuote(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, CreateQuoteRequest{
		CustomerID:    2,
		PaymentMethod: "boleto 28d",
		ValidityDays:  15,
		Items: []LineItemRequest{{
			ProductID: 3, Quantity: 5, UnitCost: 8, UnitSale: 14,
		}},
		Freight:  50,
		Discount: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, "ORC-000001", quote.Number)
	assert.InDelta(t, 110.0, quote.Totals.NetTotal, 1e-9) // 70 + 50 - 10

	order, err := svc.ConvertQuote(ctx, quote.ID, ConvertQuoteRequest{Salesperson: "Ana"})
	require.NoError(t, err)

	assert.Equal(t, "PED-000001", order.Number)
	assert.Equal(t, quote.CustomerID, order.CustomerID)
	assert.Equal(t, quote.PaymentMethod, order.PaymentMethod)
	assert.Equal(t, "Ana", order.Salesperson)
	require.Equal(t, quote.Items, order.Items)

	stored, err := svc.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusConverted, stored.Status)

	// Value copy: mutating the stored order's items must not leak into the quote.
	repo.orders[order.ID].Items[0].UnitSale = 999
	after, err := svc.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.InDelta(t, 14.0, after.Items[0].UnitSale, 1e-9)
}

func TestConvertQuoteTwiceFails(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, CreateQuoteRequest{
		CustomerID:    1,
		PaymentMethod: "pix",
		ValidityDays:  10,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitSale: 10}},
	})
	require.NoError(t, err)

	_, err = svc.ConvertQuote(ctx, quote.ID, ConvertQuoteRequest{})
	require.NoError(t, err)

	_, err = svc.ConvertQuote(ctx, quote.ID, ConvertQuoteRequest{})
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestUpdateConvertedQuoteRejected(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, CreateQuoteRequest{
		CustomerID:    1,
		PaymentMethod: "pix",
		ValidityDays:  10,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitSale: 10}},
	})
	require.NoError(t, err)

	_, err = svc.ConvertQuote(ctx, quote.ID, ConvertQuoteRequest{})
	require.NoError(t, err)

	discount := 5.0
	_, err = svc.UpdateQuote(ctx, quote.ID, UpdateQuoteRequest{Discount: &discount})
	assert.ErrorIs(t, err, httpx.ErrInvalidState)
}

func TestExpireQuotes(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()

	quote, err := svc.CreateQuote(ctx, CreateQuoteRequest{
		CustomerID:    1,
		PaymentMethod: "pix",
		ValidityDays:  5,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitSale: 10}},
	})
	require.NoError(t, err)

	// Backdate past the validity window.
	repo.quotes[quote.ID].CreatedAt = time.Now().UTC().AddDate(0, 0, -6)

	n, err := svc.ExpireQuotes(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := svc.GetQuote(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, QuoteStatusExpired, stored.Status)
}

func TestQuoteDefaultRemarks(t *testing.T) {
	svc, _, _ := newTestService()

	quote, err := svc.CreateQuote(context.Background(), CreateQuoteRequest{
		CustomerID:    1,
		PaymentMethod: "pix",
		ValidityDays:  10,
		Items:         []LineItemRequest{{ProductID: 1, Quantity: 1, UnitSale: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, DefaultQuoteRemarks, quote.Remarks)
}
