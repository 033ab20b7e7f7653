package products

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

const productColumns = `id, code, description, purchase_price, sale_price, margin, coalesce(supplier, ''), created_at`

func scanProduct(row interface{ Scan(...any) error }) (*Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.PurchasePrice,
		&p.SalePrice, &p.Margin, &p.Supplier, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a product. Duplicate codes map to ErrDuplicate.
func (r *PgRepository) Create(ctx context.Context, p *Product) (int64, error) {
	const q = `
		INSERT INTO products (code, description, purchase_price, sale_price, margin, supplier, created_at)
		VALUES ($1, $2, $3, $4, $5, nullif($6, ''), $7)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, q,
		p.Code, p.Description, p.PurchasePrice, p.SalePrice, p.Margin, p.Supplier, p.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("products: insert: %w", httpx.MapPgError(err))
	}
	return id, nil
}

// Get loads one product by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (*Product, error) {
	q := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("products: get %d: %w", id, httpx.MapPgError(err))
	}
	return p, nil
}

// List returns products sorted by code, filtered by an optional term
// matched against code and description.
func (r *PgRepository) List(ctx context.Context, search string) ([]Product, error) {
	q := `SELECT ` + productColumns + ` FROM products`
	var args []any
	if search != "" {
		q += ` WHERE code ILIKE $1 OR description ILIKE $1`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY code`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("products: scan: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// Update rewrites the editable columns.
func (r *PgRepository) Update(ctx context.Context, p *Product) error {
	const q = `
		UPDATE products
		SET description = $2, purchase_price = $3, sale_price = $4, margin = $5, supplier = nullif($6, '')
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q, p.ID, p.Description, p.PurchasePrice, p.SalePrice, p.Margin, p.Supplier)
	if err != nil {
		return fmt.Errorf("products: update %d: %w", p.ID, httpx.MapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("products: update %d: %w", p.ID, httpx.ErrNotFound)
	}
	return nil
}

// Delete removes a product.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("products: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("products: delete %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
