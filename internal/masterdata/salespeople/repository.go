package salespeople

import (
	"context"
	"fmt"

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

const salespersonColumns = `id, code, name, email, phone, active, created_at`

func scanSalesperson(row interface{ Scan(...any) error }) (*Salesperson, error) {
	var sp Salesperson
	err := row.Scan(&sp.ID, &sp.Code, &sp.Name, &sp.Email, &sp.Phone, &sp.Active, &sp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// NextCode draws the next VEND code from its sequence.
func (r *PgRepository) NextCode(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('salesperson_code_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("salespeople: next code: %w", err)
	}
	return fmt.Sprintf("VEND-%06d", n), nil
}

// Create inserts a seller.
func (r *PgRepository) Create(ctx context.Context, sp *Salesperson) (int64, error) {
	const q = `
		INSERT INTO salespeople (code, name, email, phone, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, q, sp.Code, sp.Name, sp.Email, sp.Phone, sp.Active, sp.CreatedAt).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("salespeople: insert: %w", httpx.MapPgError(err))
	}
	return id, nil
}

// Get loads one seller by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (*Salesperson, error) {
	q := `SELECT ` + salespersonColumns + ` FROM salespeople WHERE id = $1`
	sp, err := scanSalesperson(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("salespeople: get %d: %w", id, httpx.MapPgError(err))
	}
	return sp, nil
}

// List returns sellers sorted by name.
func (r *PgRepository) List(ctx context.Context, activeOnly bool) ([]Salesperson, error) {
	q := `SELECT ` + salespersonColumns + ` FROM salespeople`
	if activeOnly {
		q += ` WHERE active`
	}
	q += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("salespeople: list: %w", err)
	}
	defer rows.Close()

	var out []Salesperson
	for rows.Next() {
		sp, err := scanSalesperson(rows)
		if err != nil {
			return nil, fmt.Errorf("salespeople: scan: %w", err)
		}
		out = append(out, *sp)
	}
	return out, rows.Err()
}

// Update rewrites the editable columns.
func (r *PgRepository) Update(ctx context.Context, sp *Salesperson) error {
	const q = `
		UPDATE salespeople
		SET name = $2, email = $3, phone = $4, active = $5
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, sp.ID, sp.Name, sp.Email, sp.Phone, sp.Active)
	if err != nil {
		return fmt.Errorf("salespeople: update %d: %w", sp.ID, httpx.MapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("salespeople: update %d: %w", sp.ID, httpx.ErrNotFound)
	}
	return nil
}

// Delete removes a seller.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM salespeople WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("salespeople: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("salespeople: delete %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
