package tenders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/httpx"
)

// PgRepository is the PostgreSQL implementation of Repository. The milestone
// timeline rides on the tender row as a jsonb snapshot.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PgRepository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const tenderColumns = `id, number, agency, city, state, session_date, session_time,
	products, estimated_value, profit, status, events, created_at`

func scanTender(row pgx.Row) (*Tender, error) {
	var t Tender
	err := row.Scan(
		&t.ID, &t.Number, &t.Agency, &t.City, &t.State, &t.SessionDate,
		&t.SessionTime, &t.Products, &t.EstimatedValue, &t.Profit, &t.Status,
		&t.Events, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create persists a new participation.
func (r *PgRepository) Create(ctx context.Context, t *Tender) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tenders (
			number, agency, city, state, session_date, session_time,
			products, estimated_value, profit, status, events, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING id`,
		t.Number, t.Agency, t.City, t.State, t.SessionDate, t.SessionTime,
		t.Products, t.EstimatedValue, t.Profit, t.Status, t.Events, t.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, httpx.MapPgError(err)
	}
	return id, nil
}

// Get loads a participation by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (*Tender, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, id)
	return scanTender(row)
}

// List returns participations matching the filter, next session first.
// A negative limit disables pagination (used by the overdue sweep).
func (r *PgRepository) List(ctx context.Context, req ListTendersRequest) ([]Tender, int, error) {
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
	if req.City != "" {
		add("city = $%d", req.City)
	}
	if !req.DateFrom.IsZero() {
		add("session_date >= $%d", req.DateFrom)
	}
	if !req.DateTo.IsZero() {
		add("session_date <= $%d", req.DateTo)
	}
	clause := ""
	if len(where) > 0 {
		clause = " WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM tenders`+clause, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + tenderColumns + ` FROM tenders` + clause + ` ORDER BY session_date DESC`
	if req.Limit >= 0 {
		limit := req.Limit
		if limit == 0 {
			limit = 50
		}
		args = append(args, limit, req.Offset)
		query += fmt.Sprintf(` LIMIT $%d OFFSET $%d`, len(args)-1, len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tenders []Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, 0, err
		}
		tenders = append(tenders, *t)
	}
	return tenders, total, rows.Err()
}

// Update replaces the mutable fields of a participation.
func (r *PgRepository) Update(ctx context.Context, t *Tender) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE tenders SET
			number = $1, agency = $2, city = $3, state = $4,
			session_date = $5, session_time = $6, products = $7,
			estimated_value = $8, profit = $9
		WHERE id = $10`,
		t.Number, t.Agency, t.City, t.State, t.SessionDate, t.SessionTime,
		t.Products, t.EstimatedValue, t.Profit, t.ID,
	)
	if err != nil {
		return httpx.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// UpdateStatus sets the outcome label.
func (r *PgRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tenders SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// UpdateEvents replaces the milestone timeline.
func (r *PgRepository) UpdateEvents(ctx context.Context, id int64, events []Event) error {
	tag, err := r.pool.Exec(ctx, `UPDATE tenders SET events = $1 WHERE id = $2`, events, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

// Delete removes a participation.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tenders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
