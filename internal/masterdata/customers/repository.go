package customers

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

const customerColumns = `id, code, tax_id, name, legal_name, trade_name, address, city, state, postal_code, created_at`

func scanCustomer(row interface{ Scan(...any) error }) (*Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.Code, &c.TaxID, &c.Name, &c.LegalName, &c.TradeName,
		&c.Address, &c.City, &c.State, &c.PostalCode, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a customer. Duplicate codes map to ErrDuplicate.
func (r *PgRepository) Create(ctx context.Context, c *Customer) (int64, error) {
	const q = `
		INSERT INTO customers (code, tax_id, name, legal_name, trade_name, address, city, state, postal_code, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, q,
		c.Code, c.TaxID, c.Name, c.LegalName, c.TradeName,
		c.Address, c.City, c.State, c.PostalCode, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("customers: insert: %w", httpx.MapPgError(err))
	}
	return id, nil
}

// Get loads one customer by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (*Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	c, err := scanCustomer(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("customers: get %d: %w", id, httpx.MapPgError(err))
	}
	return c, nil
}

// List returns customers sorted by name, filtered by an optional term
// matched against name, trade name and code.
func (r *PgRepository) List(ctx context.Context, search string) ([]Customer, error) {
	q := `SELECT ` + customerColumns + ` FROM customers`
	var args []any
	if search != "" {
		q += ` WHERE name ILIKE $1 OR trade_name ILIKE $1 OR code ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("customers: list: %w", err)
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("customers: scan: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

// Update rewrites the editable columns.
func (r *PgRepository) Update(ctx context.Context, c *Customer) error {
	const q = `
		UPDATE customers
		SET tax_id = $2, name = $3, legal_name = $4, trade_name = $5,
		    address = $6, city = $7, state = $8, postal_code = $9
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, c.ID, c.TaxID, c.Name, c.LegalName, c.TradeName,
		c.Address, c.City, c.State, c.PostalCode)
	if err != nil {
		return fmt.Errorf("customers: update %d: %w", c.ID, httpx.MapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customers: update %d: %w", c.ID, httpx.ErrNotFound)
	}
	return nil
}

// Delete removes a customer.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("customers: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("customers: delete %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
