package reports

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/sales"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/tenders"
)

// Repository is the read surface the aggregation depends on.
type Repository interface {
	OrderFacts(ctx context.Context, q Query) ([]OrderFact, error)
	TenderFacts(ctx context.Context, q Query) ([]TenderFact, error)
	ExpenseTotal(ctx context.Context, from, to time.Time) (float64, error)
	DistinctDimensions(ctx context.Context) (salespeople, cities []string, err error)
}

// Service computes management reports, caching results behind the version
// the write paths bump.
type Service struct {
	logger      *slog.Logger
	repo        Repository
	cache       *Cache
	recentLimit int
}

// NewService wires the report service.
func NewService(logger *slog.Logger, repo Repository, cache *Cache, recentLimit int) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if recentLimit <= 0 {
		recentLimit = 10
	}
	return &Service{logger: logger, repo: repo, cache: cache, recentLimit: recentLimit}
}

// Generate produces the report for the window, serving from cache when the
// version has not moved since the last computation.
func (s *Service) Generate(ctx context.Context, q Query) (*Report, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "general",
		q.DateFrom.UTC().Format("2006-01-02"), q.DateTo.UTC().Format("2006-01-02"),
		q.Segment, q.Salesperson, q.City)
	if err != nil {
		return nil, fmt.Errorf("report cache key: %w", err)
	}

	var report Report
	err = s.cache.FetchJSON(ctx, key, &report, func(ctx context.Context) (interface{}, error) {
		return s.build(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// transaction is one revenue-bearing record before grouping.
type transaction struct {
	RecentTransaction
	Cost float64
	City string
}

func (s *Service) build(ctx context.Context, q Query) (*Report, error) {
	var (
		orderFacts  []OrderFact
		tenderFacts []TenderFact
		expenses    float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orderFacts, err = s.repo.OrderFacts(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		tenderFacts, err = s.repo.TenderFacts(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.repo.ExpenseTotal(gctx, q.DateFrom, q.DateTo)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("report inputs: %w", err)
	}

	report := &Report{
		TotalExpenses: expenses,
		BySegment:     map[string]GroupStat{},
		BySalesperson: map[string]GroupStat{},
		ByCity:        map[string]GroupStat{},
	}

	var txs []transaction
	for _, f := range orderFacts {
		totals := sales.Aggregate(f.Items, f.Freight, f.Misc, 0)
		report.TotalCost += totals.Cost
		txs = append(txs, transaction{
			RecentTransaction: RecentTransaction{
				Date:         f.Date,
				Type:         "order",
				Number:       f.Number,
				Counterparty: f.Customer,
				Segment:      f.Segment,
				Salesperson:  f.Salesperson,
				Value:        totals.Revenue,
				Profit:       totals.GrossProfit,
			},
			Cost: totals.Cost,
			City: f.City,
		})
	}
	report.OrderCount = len(orderFacts)

	// Tenders belong to the public-tender segment and carry no salesperson,
	// so a segment filter for anything else, or any salesperson filter,
	// leaves them out of the revenue set. Win rate still counts every
	// decided participation in the window.
	includeTenders := q.Salesperson == "" &&
		(q.Segment == "" || q.Segment == string(sales.ChannelPublicTender))

	var won, lost int
	for _, f := range tenderFacts {
		switch f.Status {
		case tenders.StatusWon:
			won++
		case tenders.StatusLost:
			lost++
		}
		if !includeTenders || f.Status != tenders.StatusWon {
			continue
		}
		txs = append(txs, transaction{
			RecentTransaction: RecentTransaction{
				Date:         f.Date,
				Type:         "tender",
				Number:       f.Number,
				Counterparty: f.Agency,
				Segment:      string(sales.ChannelPublicTender),
				Value:        f.EstimatedValue,
				Profit:       f.Profit,
			},
			City: f.City,
		})
	}
	report.TenderCount = len(tenderFacts)
	if won+lost > 0 {
		report.WinRate = float64(won) / float64(won+lost)
	}

	for _, tx := range txs {
		report.TotalRevenue += tx.Value
		report.GrossProfit += tx.Profit
		accumulate(report.BySegment, tx.Segment, tx)
		accumulate(report.BySalesperson, tx.Salesperson, tx)
		accumulate(report.ByCity, tx.City, tx)
	}
	report.NetProfit = report.GrossProfit - report.TotalExpenses

	applyPercentages(report.BySegment, report.TotalRevenue)
	applyPercentages(report.BySalesperson, report.TotalRevenue)
	applyPercentages(report.ByCity, report.TotalRevenue)

	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.After(txs[j].Date) })
	report.RecentTransactions = make([]RecentTransaction, 0, s.recentLimit)
	for i, tx := range txs {
		if i == s.recentLimit {
			break
		}
		report.RecentTransactions = append(report.RecentTransactions, tx.RecentTransaction)
	}

	return report, nil
}

func accumulate(groups map[string]GroupStat, key string, tx transaction) {
	if key == "" {
		key = UnspecifiedKey
	}
	g := groups[key]
	g.Count++
	g.Revenue += tx.Value
	g.Profit += tx.Profit
	groups[key] = g
}

func applyPercentages(groups map[string]GroupStat, totalRevenue float64) {
	if totalRevenue == 0 {
		return
	}
	for key, g := range groups {
		g.Percent = g.Revenue / totalRevenue
		groups[key] = g
	}
}

// Filters lists the dimension values available for narrowing a report.
func (s *Service) Filters(ctx context.Context) (*FilterOptions, error) {
	salespeople, cities, err := s.repo.DistinctDimensions(ctx)
	if err != nil {
		return nil, fmt.Errorf("report filters: %w", err)
	}
	return &FilterOptions{
		Segments: []string{
			string(sales.ChannelEndConsumer),
			string(sales.ChannelResale),
			string(sales.ChannelPublicTender),
			string(sales.ChannelPromotional),
		},
		Salespeople: salespeople,
		Cities:      cities,
	}, nil
}

// Warm precomputes the current-month report so the first dashboard hit
// after an invalidation is served from cache.
func (s *Service) Warm(ctx context.Context) error {
	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	_, err := s.Generate(ctx, Query{DateFrom: from, DateTo: from.AddDate(0, 1, 0)})
	return err
}
