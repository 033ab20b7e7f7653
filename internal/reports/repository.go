package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/sales"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/tenders"
)

// OrderFact is the raw material the aggregation needs from one order.
// Totals are recomputed from the item snapshot, never read back from the
// denormalized columns, so a report is always a pure function of the items.
type OrderFact struct {
	Date        time.Time
	Number      string
	Customer    string
	Segment     string
	Salesperson string
	City        string
	Items       []sales.LineItem
	Freight     float64
	Misc        sales.MiscCharge
}

// TenderFact is the raw material from one tender participation.
type TenderFact struct {
	Date           time.Time
	Number         string
	Agency         string
	City           string
	EstimatedValue float64
	Profit         float64
	Status         tenders.Status
}

// PgRepository reads report inputs straight from the document tables.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PgRepository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// OrderFacts returns the orders matching the query. The city dimension
// comes from the customer record since documents do not carry one.
func (r *PgRepository) OrderFacts(ctx context.Context, q Query) ([]OrderFact, error) {
	var (
		where = []string{"o.created_at >= $1", "o.created_at < $2"}
		args  = []any{q.DateFrom, q.DateTo}
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if q.Segment != "" {
		add("o.channel = $%d", q.Segment)
	}
	if q.Salesperson != "" {
		add("o.salesperson = $%d", q.Salesperson)
	}
	if q.City != "" {
		add("coalesce(c.city, '') = $%d", q.City)
	}

	sql := `
		SELECT o.created_at, o.number, o.customer_name, o.channel, o.salesperson,
		       coalesce(c.city, ''), o.items, o.freight, o.misc_amount,
		       o.misc_description, o.misc_pass_through
		FROM orders o
		LEFT JOIN customers c ON c.id = o.customer_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY o.created_at DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: order facts: %w", err)
	}
	defer rows.Close()

	var out []OrderFact
	for rows.Next() {
		var f OrderFact
		err := rows.Scan(&f.Date, &f.Number, &f.Customer, &f.Segment, &f.Salesperson,
			&f.City, &f.Items, &f.Freight, &f.Misc.Amount, &f.Misc.Description,
			&f.Misc.PassThrough)
		if err != nil {
			return nil, fmt.Errorf("reports: scan order fact: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// TenderFacts returns tender participations whose session falls in range,
// optionally narrowed to a venue city. All outcomes are returned; the
// aggregation decides which ones carry revenue.
func (r *PgRepository) TenderFacts(ctx context.Context, q Query) ([]TenderFact, error) {
	var (
		where = []string{"session_date >= $1", "session_date < $2"}
		args  = []any{q.DateFrom, q.DateTo}
	)
	if q.City != "" {
		args = append(args, q.City)
		where = append(where, fmt.Sprintf("city = $%d", len(args)))
	}

	sql := `
		SELECT session_date, number, agency, city, estimated_value, profit, status
		FROM tenders
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY session_date DESC`

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("reports: tender facts: %w", err)
	}
	defer rows.Close()

	var out []TenderFact
	for rows.Next() {
		var f TenderFact
		err := rows.Scan(&f.Date, &f.Number, &f.Agency, &f.City, &f.EstimatedValue,
			&f.Profit, &f.Status)
		if err != nil {
			return nil, fmt.Errorf("reports: scan tender fact: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ExpenseTotal sums expenses incurred in the window, paid or not.
func (r *PgRepository) ExpenseTotal(ctx context.Context, from, to time.Time) (float64, error) {
	const q = `
		SELECT coalesce(sum(value), 0)
		FROM expenses
		WHERE incurred_at >= $1 AND incurred_at < $2`

	var total float64
	if err := r.pool.QueryRow(ctx, q, from, to).Scan(&total); err != nil {
		return 0, fmt.Errorf("reports: expense total: %w", err)
	}
	return total, nil
}

// DistinctDimensions returns the salespeople and cities seen on documents.
func (r *PgRepository) DistinctDimensions(ctx context.Context) (salespeople, cities []string, err error) {
	const spQ = `
		SELECT DISTINCT salesperson FROM orders
		WHERE salesperson <> '' ORDER BY salesperson`
	rows, err := r.pool.Query(ctx, spQ)
	if err != nil {
		return nil, nil, fmt.Errorf("reports: distinct salespeople: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, nil, fmt.Errorf("reports: scan salesperson: %w", err)
		}
		salespeople = append(salespeople, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	const cityQ = `
		SELECT DISTINCT city FROM (
			SELECT coalesce(c.city, '') AS city FROM orders o
			LEFT JOIN customers c ON c.id = o.customer_id
			UNION
			SELECT city FROM tenders
		) d
		WHERE city <> '' ORDER BY city`
	cityRows, err := r.pool.Query(ctx, cityQ)
	if err != nil {
		return nil, nil, fmt.Errorf("reports: distinct cities: %w", err)
	}
	defer cityRows.Close()
	for cityRows.Next() {
		var c string
		if err := cityRows.Scan(&c); err != nil {
			return nil, nil, fmt.Errorf("reports: scan city: %w", err)
		}
		cities = append(cities, c)
	}
	return salespeople, cities, cityRows.Err()
}
