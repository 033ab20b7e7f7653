package expenses

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// PgRepository is the PostgreSQL implementation of Repository.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PgRepository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const expenseColumns = `id, category, description, value, incurred_at, due_at, status, created_at`

func scanExpense(row interface{ Scan(...any) error }) (*Expense, error) {
	var e Expense
	err := row.Scan(&e.ID, &e.Category, &e.Description, &e.Value,
		&e.IncurredAt, &e.DueAt, &e.Status, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts an expense and returns its id.
func (r *PgRepository) Create(ctx context.Context, e *Expense) (int64, error) {
	const q = `
		INSERT INTO expenses (category, description, value, incurred_at, due_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, q,
		e.Category, e.Description, e.Value, e.IncurredAt, e.DueAt, e.Status, e.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("expenses: insert: %w", httpx.MapPgError(err))
	}
	return id, nil
}

// Get loads one expense by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (*Expense, error) {
	q := `SELECT ` + expenseColumns + ` FROM expenses WHERE id = $1`
	e, err := scanExpense(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("expenses: get %d: %w", id, httpx.MapPgError(err))
	}
	return e, nil
}

// List returns expenses newest due first, with the unfiltered total.
func (r *PgRepository) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	var (
		where []string
		args  []any
	)
	add := func(clause string, value any) {
		args = append(args, value)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if req.Status != nil {
		add("status = $%d", *req.Status)
	}
	if req.Category != "" {
		add("category = $%d", req.Category)
	}

	cond := ""
	if len(where) > 0 {
		cond = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM expenses`+cond, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("expenses: count: %w", err)
	}

	q := `SELECT ` + expenseColumns + ` FROM expenses` + cond + ` ORDER BY due_at DESC, id DESC`
	if req.Limit > 0 {
		q += fmt.Sprintf(" LIMIT %d OFFSET %d", req.Limit, req.Offset)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("expenses: list: %w", err)
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("expenses: scan: %w", err)
		}
		out = append(out, *e)
	}
	return out, total, rows.Err()
}

// Update rewrites the editable columns.
func (r *PgRepository) Update(ctx context.Context, e *Expense) error {
	const q = `
		UPDATE expenses
		SET category = $2, description = $3, value = $4, incurred_at = $5, due_at = $6
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, e.ID, e.Category, e.Description, e.Value, e.IncurredAt, e.DueAt)
	if err != nil {
		return fmt.Errorf("expenses: update %d: %w", e.ID, httpx.MapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expenses: update %d: %w", e.ID, httpx.ErrNotFound)
	}
	return nil
}

// UpdateStatus flips the settlement status.
func (r *PgRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE expenses SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("expenses: update status %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expenses: update status %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

// Delete removes an expense.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("expenses: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("expenses: delete %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
