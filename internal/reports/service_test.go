package reports

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/sales"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/tenders"
)

type mockRepo struct {
	orders      []OrderFact
	tenders     []TenderFact
	expenses    float64
	orderCalls  int
	salespeople []string
	cities      []string
}

func (m *mockRepo) OrderFacts(_ context.Context, _ Query) ([]OrderFact, error) {
	m.orderCalls++
	return m.orders, nil
}

func (m *mockRepo) TenderFacts(_ context.Context, _ Query) ([]TenderFact, error) {
	return m.tenders, nil
}

func (m *mockRepo) ExpenseTotal(_ context.Context, _, _ time.Time) (float64, error) {
	return m.expenses, nil
}

func (m *mockRepo) DistinctDimensions(_ context.Context) ([]string, []string, error) {
	return m.salespeople, m.cities, nil
}

func newTestService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(nil, repo, NewCache(client, time.Minute), 10)
}

func day(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func window() Query {
	return Query{DateFrom: day(1), DateTo: day(30)}
}

func simpleItem(qty, cost, sale float64) sales.LineItem {
	return sales.LineItem{Quantity: qty, UnitCost: cost, UnitSale: sale}
}

func testFacts() *mockRepo {
	return &mockRepo{
		orders: []OrderFact{
			{
				Date: day(5), Number: "PED-000001", Customer: "Gravadora Alfa",
				Segment: "resale", Salesperson: "Paula", City: "Curitiba",
				Items: []sales.LineItem{simpleItem(10, 10, 20)},
			},
			{
				Date: day(8), Number: "PED-000002", Customer: "Loja Beta",
				Segment: "end_consumer", Salesperson: "", City: "",
				Items: []sales.LineItem{simpleItem(5, 8, 12)},
			},
		},
		tenders: []TenderFact{
			{Date: day(10), Number: "PE 01/2024", Agency: "Prefeitura", City: "Londrina",
				EstimatedValue: 300, Profit: 90, Status: tenders.StatusWon},
			{Date: day(12), Number: "PE 02/2024", Agency: "Estado", City: "Curitiba",
				EstimatedValue: 500, Status: tenders.StatusLost},
		},
		expenses: 40,
	}
}

func TestGenerateTotals(t *testing.T) {
	svc := newTestService(t, testFacts())

	report, err := svc.Generate(context.Background(), window())
	require.NoError(t, err)

	// Orders: 10×20 + 5×12 = 260 revenue; tender won adds 300.
	assert.InDelta(t, 560.0, report.TotalRevenue, 1e-9)
	assert.InDelta(t, 140.0, report.TotalCost, 1e-9)
	// Orders profit: 100 + 20; tender profit 90.
	assert.InDelta(t, 210.0, report.GrossProfit, 1e-9)
	assert.InDelta(t, 40.0, report.TotalExpenses, 1e-9)
	assert.InDelta(t, 170.0, report.NetProfit, 1e-9)
	assert.Equal(t, 2, report.OrderCount)
	assert.Equal(t, 2, report.TenderCount)
	assert.InDelta(t, 0.5, report.WinRate, 1e-9)
}

func TestGenerateReconciliation(t *testing.T) {
	svc := newTestService(t, testFacts())

	report, err := svc.Generate(context.Background(), window())
	require.NoError(t, err)

	for name, groups := range map[string]map[string]GroupStat{
		"by_segment":     report.BySegment,
		"by_salesperson": report.BySalesperson,
		"by_city":        report.ByCity,
	} {
		var sum, pct float64
		for _, g := range groups {
			sum += g.Revenue
			pct += g.Percent
		}
		assert.InDelta(t, report.TotalRevenue, sum, 1e-9, name)
		assert.InDelta(t, 1.0, pct, 1e-9, name)
	}
}

func TestGenerateUnspecifiedBuckets(t *testing.T) {
	svc := newTestService(t, testFacts())

	report, err := svc.Generate(context.Background(), window())
	require.NoError(t, err)

	// The second order has no salesperson or customer city; the won tender
	// has no salesperson either. Neither record may be dropped.
	sp := report.BySalesperson[UnspecifiedKey]
	assert.Equal(t, 2, sp.Count)
	assert.InDelta(t, 360.0, sp.Revenue, 1e-9)

	city := report.ByCity[UnspecifiedKey]
	assert.Equal(t, 1, city.Count)
	assert.InDelta(t, 60.0, city.Revenue, 1e-9)

	seg := report.BySegment["public_tender"]
	assert.Equal(t, 1, seg.Count)
	assert.InDelta(t, 300.0, seg.Revenue, 1e-9)
}

func TestGenerateRecentTransactions(t *testing.T) {
	svc := newTestService(t, testFacts())

	report, err := svc.Generate(context.Background(), window())
	require.NoError(t, err)

	// Lost tenders carry no revenue and never hit the feed.
	require.Len(t, report.RecentTransactions, 3)
	assert.Equal(t, "tender", report.RecentTransactions[0].Type)
	assert.Equal(t, "PE 01/2024", report.RecentTransactions[0].Number)
	assert.Equal(t, "PED-000002", report.RecentTransactions[1].Number)
	assert.Equal(t, "PED-000001", report.RecentTransactions[2].Number)
}

func TestGenerateEmptyWindow(t *testing.T) {
	svc := newTestService(t, &mockRepo{})

	report, err := svc.Generate(context.Background(), window())
	require.NoError(t, err)

	assert.Zero(t, report.TotalRevenue)
	assert.Zero(t, report.NetProfit)
	assert.Zero(t, report.WinRate)
	assert.Empty(t, report.BySegment)
	assert.Empty(t, report.BySalesperson)
	assert.Empty(t, report.ByCity)
	assert.Empty(t, report.RecentTransactions)
}

func TestGenerateCachesUntilBump(t *testing.T) {
	repo := testFacts()
	svc := newTestService(t, repo)
	ctx := context.Background()

	_, err := svc.Generate(ctx, window())
	require.NoError(t, err)
	_, err = svc.Generate(ctx, window())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.orderCalls)

	require.NoError(t, svc.cache.Bump(ctx))
	_, err = svc.Generate(ctx, window())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.orderCalls)
}

func TestFilters(t *testing.T) {
	repo := testFacts()
	repo.salespeople = []string{"Paula"}
	repo.cities = []string{"Curitiba", "Londrina"}
	svc := newTestService(t, repo)

	opts, err := svc.Filters(context.Background())
	require.NoError(t, err)
	assert.Contains(t, opts.Segments, "public_tender")
	assert.Equal(t, []string{"Paula"}, opts.Salespeople)
	assert.Equal(t, []string{"Curitiba", "Londrina"}, opts.Cities)
}
