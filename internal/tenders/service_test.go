package tenders

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
	tenders map[int64]*Tender
	nextID  int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{tenders: make(map[int64]*Tender)}
}

func cloneTender(t *Tender) *Tender {
	cp := *t
	cp.Events = append([]Event(nil), t.Events...)
	return &cp
}

func (m *mockRepository) Create(_ context.Context, t *Tender) (int64, error) {
	m.nextID++
	cp := cloneTender(t)
	cp.ID = m.nextID
	m.tenders[m.nextID] = cp
	return m.nextID, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (*Tender, error) {
	t, ok := m.tenders[id]
	if !ok {
		return nil, fmt.Errorf("tender %d: %w", id, httpx.ErrNotFound)
	}
	return cloneTender(t), nil
}

func (m *mockRepository) List(_ context.Context, req ListTendersRequest) ([]Tender, int, error) {
	out := make([]Tender, 0, len(m.tenders))
	for _, t := range m.tenders {
		if req.Status != nil && t.Status != *req.Status {
			continue
		}
		out = append(out, *cloneTender(t))
	}
	return out, len(out), nil
}

func (m *mockRepository) Update(_ context.Context, t *Tender) error {
	if _, ok := m.tenders[t.ID]; !ok {
		return httpx.ErrNotFound
	}
	m.tenders[t.ID] = cloneTender(t)
	return nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status Status) error {
	t, ok := m.tenders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	t.Status = status
	return nil
}

func (m *mockRepository) UpdateEvents(_ context.Context, id int64, events []Event) error {
	t, ok := m.tenders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	t.Events = append([]Event(nil), events...)
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if _, ok := m.tenders[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.tenders, id)
	return nil
}

func newTestService(repo *mockRepository) *Service {
	svc := NewService(nil, repo, nil)
	svc.now = func() time.Time { return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC) }
	n := 0
	svc.newEventID = func() string { n++; return fmt.Sprintf("ev-%d", n) }
	return svc
}

func seedTender(t *testing.T, svc *Service) *Tender {
	t.Helper()
	tender, err := svc.Create(context.Background(), CreateTenderRequest{
		Number:         "PE 042/2024",
		Agency:         "Prefeitura Municipal",
		City:           "Curitiba",
		State:          "PR",
		SessionDate:    time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		SessionTime:    "09:30",
		Products:       "Canetas personalizadas",
		EstimatedValue: 18000,
	})
	require.NoError(t, err)
	return tender
}

func TestCreateTenderStartsScheduled(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)

	assert.Equal(t, StatusScheduled, tender.Status)
	assert.NotNil(t, tender.Events)
	assert.Empty(t, tender.Events)
}

func TestTenderStatusJumpsFreely(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)
	ctx := context.Background()

	for _, st := range []Status{StatusInProgress, StatusAwaitingResult, StatusWon, StatusScheduled, StatusLost} {
		got, err := svc.UpdateStatus(ctx, tender.ID, st)
		require.NoError(t, err)
		assert.Equal(t, st, got.Status)
	}
}

func TestAddEventDefaultsPending(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)

	got, err := svc.AddEvent(context.Background(), tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		Type:        "document_delivery",
		Description: "entregar proposta na sede",
	})
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "ev-1", got.Events[0].ID)
	assert.Equal(t, EventStatusPending, got.Events[0].Status)
}

func TestEventLifecycleIndependentOfParentStatus(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)
	ctx := context.Background()

	got, err := svc.AddEvent(ctx, tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		Type:        "session",
		Description: "sessao de abertura",
	})
	require.NoError(t, err)
	eventID := got.Events[0].ID

	_, err = svc.UpdateStatus(ctx, tender.ID, StatusLost)
	require.NoError(t, err)

	// A closed participation still carries its pending milestone.
	got, err = svc.Get(ctx, tender.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusPending, got.Events[0].Status)

	got, err = svc.UpdateEventStatus(ctx, tender.ID, eventID, EventStatusDone)
	require.NoError(t, err)
	assert.Equal(t, EventStatusDone, got.Events[0].Status)
	assert.Equal(t, StatusLost, got.Status)
}

func TestUpdateEventStatusUnknownEvent(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)

	_, err := svc.UpdateEventStatus(context.Background(), tender.ID, "missing", EventStatusDone)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestRemoveEvent(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)
	ctx := context.Background()

	got, err := svc.AddEvent(ctx, tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC),
		Type:        "session",
		Description: "sessao",
	})
	require.NoError(t, err)
	got, err = svc.AddEvent(ctx, tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 22, 0, 0, 0, 0, time.UTC),
		Type:        "result",
		Description: "resultado",
	})
	require.NoError(t, err)
	require.Len(t, got.Events, 2)

	got, err = svc.RemoveEvent(ctx, tender.ID, got.Events[0].ID)
	require.NoError(t, err)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "result", got.Events[0].Type)

	_, err = svc.RemoveEvent(ctx, tender.ID, "missing")
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestMarkOverdueEvents(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo)
	tender := seedTender(t, svc)
	ctx := context.Background()

	_, err := svc.AddEvent(ctx, tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Type:        "document_delivery",
		Description: "prazo vencido",
	})
	require.NoError(t, err)
	_, err = svc.AddEvent(ctx, tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Type:        "session",
		Description: "ainda no prazo",
	})
	require.NoError(t, err)
	got, err := svc.AddEvent(ctx, tender.ID, AddEventRequest{
		Date:        time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Type:        "visit",
		Description: "ja realizado",
		Status:      string(EventStatusDone),
	})
	require.NoError(t, err)
	require.Len(t, got.Events, 3)

	marked, err := svc.MarkOverdueEvents(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	got, err = svc.Get(ctx, tender.ID)
	require.NoError(t, err)
	assert.Equal(t, EventStatusLate, got.Events[0].Status)
	assert.Equal(t, EventStatusPending, got.Events[1].Status)
	assert.Equal(t, EventStatusDone, got.Events[2].Status)
}

func TestUpdateTenderPartial(t *testing.T) {
	svc := newTestService(newMockRepository())
	tender := seedTender(t, svc)

	city := "Londrina"
	profit := 4200.0
	got, err := svc.Update(context.Background(), tender.ID, UpdateTenderRequest{
		City:   &city,
		Profit: &profit,
	})
	require.NoError(t, err)
	assert.Equal(t, "Londrina", got.City)
	assert.Equal(t, 4200.0, got.Profit)
	assert.Equal(t, "PE 042/2024", got.Number)
}
