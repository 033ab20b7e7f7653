package expenses

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
	expenses map[int64]*Expense
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{expenses: make(map[int64]*Expense)}
}

func (m *mockRepository) Create(_ context.Context, e *Expense) (int64, error) {
	m.nextID++
	cp := *e
	cp.ID = m.nextID
	m.expenses[m.nextID] = &cp
	return m.nextID, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Expense, error) {
	e, ok := m.expenses[id]
	if !ok {
		return nil, fmt.Errorf("expense %d: %w", id, httpx.ErrNotFound)
	}
	cp := *e
	return &cp, nil
}

func (m *mockRepository) List(_ context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	var out []Expense
	for _, e := range m.expenses {
		if req.Status != nil && e.Status != *req.Status {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(_ context.Context, e *Expense) error {
	if _, ok := m.expenses[e.ID]; !ok {
		return httpx.ErrNotFound
	}
	cp := *e
	m.expenses[e.ID] = &cp
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status Status) error {
	e, ok := m.expenses[id]
	if !ok {
		return httpx.ErrNotFound
	}
	e.Status = status
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.expenses[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.expenses, id)
	return nil
}

type mockLedger struct {
	debits []float64
	refs   []string
}

func (m *mockLedger) Debit(_ context.Context, amount float64, _, referenceID string) error {
	m.debits = append(m.debits, amount)
	m.refs = append(m.refs, referenceID)
	return nil
}

func newTestService(repo *mockRepository, ledger *mockLedger) *Service {
	svc := NewService(nil, repo, ledger, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	return svc
}

func seedExpense(t *testing.T, svc *Service) *Expense {
	t.Helper()
	e, err := svc.Create(context.Background(), CreateExpenseRequest{
		Category:    "aluguel",
		Description: "aluguel da loja",
		Value:       2500,
		IncurredAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueAt:       time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return e
}

func TestCreateExpenseDefaultsPending(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockLedger{})
	e := seedExpense(t, svc)
	assert.Equal(t, StatusPending, e.Status)
}

func TestMarkPaidDebitsCashboxOnce(t *testing.T) {
	ledger := &mockLedger{}
	svc := newTestService(newMockRepository(), ledger)
	e := seedExpense(t, svc)
	ctx := context.Background()

	got, err := svc.UpdateStatus(ctx, e.ID, StatusPaid)
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, got.Status)
	require.Len(t, ledger.debits, 1)
	assert.Equal(t, 2500.0, ledger.debits[0])
	assert.Equal(t, fmt.Sprintf("expense:%d", e.ID), ledger.refs[0])

	// Re-marking an already paid expense must not debit again.
	_, err = svc.UpdateStatus(ctx, e.ID, StatusPaid)
	require.NoError(t, err)
	assert.Len(t, ledger.debits, 1)

	// Bouncing back to pending and paid again is a new settlement.
	_, err = svc.UpdateStatus(ctx, e.ID, StatusPending)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, e.ID, StatusPaid)
	require.NoError(t, err)
	assert.Len(t, ledger.debits, 2)
}

func TestCreateExpenseAlreadyPaidSkipsLedger(t *testing.T) {
	ledger := &mockLedger{}
	svc := newTestService(newMockRepository(), ledger)

	e, err := svc.Create(context.Background(), CreateExpenseRequest{
		Category:    "frete",
		Description: "motoboy",
		Value:       80,
		IncurredAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DueAt:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Status:      string(StatusPaid),
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, e.Status)
	assert.Empty(t, ledger.debits)
}

func TestUpdateExpensePartial(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockLedger{})
	e := seedExpense(t, svc)

	value := 2800.0
	got, err := svc.Update(context.Background(), e.ID, UpdateExpenseRequest{Value: &value})
	require.NoError(t, err)
	assert.Equal(t, 2800.0, got.Value)
	assert.Equal(t, "aluguel", got.Category)
}

func TestUpdateStatusUnknownExpense(t *testing.T) {
	svc := newTestService(newMockRepository(), &mockLedger{})
	_, err := svc.UpdateStatus(context.Background(), 99, StatusPaid)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}
