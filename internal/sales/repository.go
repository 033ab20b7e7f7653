package sales

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/db"
	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// PgRepository is the PostgreSQL implementation of Repository. Line items are
// stored as a jsonb snapshot on the document row: documents own their items
// by value, which is exactly the copy semantics conversion requires.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PgRepository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// querier abstracts pool vs transaction execution.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconnCommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// pgconnCommandTag narrows the command tag to what we use.
type pgconnCommandTag interface {
	RowsAffected() int64
}

type poolQuerier struct{ pool *pgxpool.Pool }

func (p poolQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconnCommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}
func (p poolQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return p.pool.QueryRow(ctx, sql, args...)
}
func (p poolQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return p.pool.Query(ctx, sql, args...)
}

type txQuerier struct{ tx pgx.Tx }

func (t txQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconnCommandTag, error) {
	return t.tx.Exec(ctx, sql, args...)
}
func (t txQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.tx.QueryRow(ctx, sql, args...)
}
func (t txQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.tx.Query(ctx, sql, args...)
}

// WithTx runs fn against a transactional view of the repository.
func (r *PgRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &pgTxRepository{q: txQuerier{tx: tx}})
	})
}

type pgTxRepository struct {
	q querier
}

func (t *pgTxRepository) CreateOrder(ctx context.Context, o *Order) (int64, error) {
	return insertOrder(ctx, t.q, o)
}

func (t *pgTxRepository) MarkQuoteConverted(ctx context.Context, id int64) error {
	tag, err := t.q.Exec(ctx,
		`UPDATE quotes SET status = $1 WHERE id = $2 AND status = $3`,
		QuoteStatusConverted, id, QuoteStatusOpen,
	)
	if err != nil {
		return httpx.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("quote %d not open: %w", id, httpx.ErrInvalidState)
	}
	return nil
}

// NextOrderNumber reserves the next sequential order number.
func (r *PgRepository) NextOrderNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("order number: %w", err)
	}
	return fmt.Sprintf("PED-%06d", n), nil
}

// NextQuoteNumber reserves the next sequential quote number.
func (r *PgRepository) NextQuoteNumber(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('quote_number_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("quote number: %w", err)
	}
	return fmt.Sprintf("ORC-%06d", n), nil
}

const orderColumns = `id, number, created_at, customer_id, customer_name, salesperson,
	payment_method, channel, items, freight, misc_amount, misc_description,
	misc_pass_through, status, total_cost, total_revenue, gross_profit, net_total`

func insertOrder(ctx context.Context, q querier, o *Order) (int64, error) {
	var id int64
	err := q.QueryRow(ctx, `
		INSERT INTO orders (
			number, created_at, customer_id, customer_name, salesperson,
			payment_method, channel, items, freight, misc_amount,
			misc_description, misc_pass_through, status,
			total_cost, total_revenue, gross_profit, net_total
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id`,
		o.Number, o.CreatedAt, o.CustomerID, o.CustomerName, o.Salesperson,
		o.PaymentMethod, o.Channel, o.Items, o.Freight, o.Misc.Amount,
		o.Misc.Description, o.Misc.PassThrough, o.Status,
		o.Totals.Cost, o.Totals.Revenue, o.Totals.GrossProfit, o.Totals.NetTotal,
	).Scan(&id)
	if err != nil {
		return 0, httpx.MapPgError(err)
	}
	return id, nil
}

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.ID, &o.Number, &o.CreatedAt, &o.CustomerID, &o.CustomerName,
		&o.Salesperson, &o.PaymentMethod, &o.Channel, &o.Items, &o.Freight,
		&o.Misc.Amount, &o.Misc.Description, &o.Misc.PassThrough, &o.Status,
		&o.Totals.Cost, &o.Totals.Revenue, &o.Totals.GrossProfit, &o.Totals.NetTotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// CreateOrder persists a new order outside a transaction.
func (r *PgRepository) CreateOrder(ctx context.Context, o *Order) (int64, error) {
	return insertOrder(ctx, poolQuerier{pool: r.pool}, o)
}

// GetOrder loads an order by id.
func (r *PgRepository) GetOrder(ctx context.Context, id int64) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	return scanOrder(row)
}

// ListOrders returns orders matching the filter, newest first.
func (r *PgRepository) ListOrders(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if req.Status != nil {
		add("status = $%d", *req.Status)
	}
	if req.Channel != nil {
		add("channel = $%d", *req.Channel)
	}
	if !req.DateFrom.IsZero() {
		add("created_at >= $%d", req.DateFrom)
	}
	if !req.DateTo.IsZero() {
		add("created_at <= $%d", req.DateTo)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM orders`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, req.Offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders`+clause+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

// UpdateOrder replaces the mutable fields of an order.
func (r *PgRepository) UpdateOrder(ctx context.Context, o *Order) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET
			salesperson = $1, payment_method = $2, channel = $3, items = $4,
			freight = $5, misc_amount = $6, misc_description = $7,
			misc_pass_through = $8, total_cost = $9, total_revenue = $10,
			gross_profit = $11, net_total = $12
		WHERE id = $13`,
		o.Salesperson, o.PaymentMethod, o.Channel, o.Items,
		o.Freight, o.Misc.Amount, o.Misc.Description, o.Misc.PassThrough,
		o.Totals.Cost, o.Totals.Revenue, o.Totals.GrossProfit, o.Totals.NetTotal,
		o.ID,
	)
	if err != nil {
		return httpx.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// UpdateOrderStatus sets the status label of an order.
func (r *PgRepository) UpdateOrderStatus(ctx context.Context, id int64, status OrderStatus) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order.
func (r *PgRepository) DeleteOrder(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

const quoteColumns = `id, number, created_at, customer_id, customer_name, payment_method,
	delivery_term, freight_payer, remarks, validity_days, items, freight,
	discount, status, total_cost, total_revenue, gross_profit, net_total`

func scanQuote(row pgx.Row) (*Quote, error) {
	var q Quote
	err := row.Scan(
		&q.ID, &q.Number, &q.CreatedAt, &q.CustomerID, &q.CustomerName,
		&q.PaymentMethod, &q.DeliveryTerm, &q.FreightPayer, &q.Remarks,
		&q.ValidityDays, &q.Items, &q.Freight, &q.Discount, &q.Status,
		&q.Totals.Cost, &q.Totals.Revenue, &q.Totals.GrossProfit, &q.Totals.NetTotal,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

// CreateQuote persists a new quote.
func (r *PgRepository) CreateQuote(ctx context.Context, q *Quote) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO quotes (
			number, created_at, customer_id, customer_name, payment_method,
			delivery_term, freight_payer, remarks, validity_days, items,
			freight, discount, status,
			total_cost, total_revenue, gross_profit, net_total
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)
		RETURNING id`,
		q.Number, q.CreatedAt, q.CustomerID, q.CustomerName, q.PaymentMethod,
		q.DeliveryTerm, q.FreightPayer, q.Remarks, q.ValidityDays, q.Items,
		q.Freight, q.Discount, q.Status,
		q.Totals.Cost, q.Totals.Revenue, q.Totals.GrossProfit, q.Totals.NetTotal,
	).Scan(&id)
	if err != nil {
		return 0, httpx.MapPgError(err)
	}
	return id, nil
}

// GetQuote loads a quote by id.
func (r *PgRepository) GetQuote(ctx context.Context, id int64) (*Quote, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = $1`, id)
	return scanQuote(row)
}

// ListQuotes returns quotes matching the filter, newest first.
func (r *PgRepository) ListQuotes(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if req.Status != nil {
		add("status = $%d", *req.Status)
	}
	if !req.DateFrom.IsZero() {
		add("created_at >= $%d", req.DateFrom)
	}
	if !req.DateTo.IsZero() {
		add("created_at <= $%d", req.DateTo)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM quotes`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, req.Offset)
	rows, err := r.pool.Query(ctx,
		`SELECT `+quoteColumns+` FROM quotes`+clause+
			fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args)),
		args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			return nil, 0, err
		}
		quotes = append(quotes, *q)
	}
	return quotes, total, rows.Err()
}

// UpdateQuote replaces the mutable fields of a quote.
func (r *PgRepository) UpdateQuote(ctx context.Context, q *Quote) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET
			payment_method = $1, delivery_term = $2, freight_payer = $3,
			remarks = $4, validity_days = $5, items = $6, freight = $7,
			discount = $8, total_cost = $9, total_revenue = $10,
			gross_profit = $11, net_total = $12
		WHERE id = $13`,
		q.PaymentMethod, q.DeliveryTerm, q.FreightPayer, q.Remarks,
		q.ValidityDays, q.Items, q.Freight, q.Discount,
		q.Totals.Cost, q.Totals.Revenue, q.Totals.GrossProfit, q.Totals.NetTotal,
		q.ID,
	)
	if err != nil {
		return httpx.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// DeleteQuote removes a quote.
func (r *PgRepository) DeleteQuote(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM quotes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// MarkExpiredQuotes expires open quotes whose validity window has passed.
func (r *PgRepository) MarkExpiredQuotes(ctx context.Context, asOf time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE quotes SET status = $1
		WHERE status = $2
		  AND created_at + validity_days * interval '1 day' < $3`,
		QuoteStatusExpired, QuoteStatusOpen, asOf,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
