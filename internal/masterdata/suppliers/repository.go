package suppliers

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

const supplierColumns = `id, code, category, legal_name, trade_name, tax_id,
	coalesce(state_tax_number, ''), postal_code, street, number, coalesce(complement, ''),
	district, city, state, contact_name, phone, active, created_at`

func scanSupplier(row interface{ Scan(...any) error }) (*Supplier, error) {
	var s Supplier
	err := row.Scan(&s.ID, &s.Code, &s.Category, &s.LegalName, &s.TradeName, &s.TaxID,
		&s.StateTaxNumber, &s.PostalCode, &s.Street, &s.Number, &s.Complement,
		&s.District, &s.City, &s.State, &s.ContactName, &s.Phone, &s.Active, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// NextCode draws the next FORN code from its sequence.
func (r *PgRepository) NextCode(ctx context.Context) (string, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('supplier_code_seq')`).Scan(&n); err != nil {
		return "", fmt.Errorf("suppliers: next code: %w", err)
	}
	return fmt.Sprintf("FORN-%06d", n), nil
}

// Create inserts a supplier.
func (r *PgRepository) Create(ctx context.Context, s *Supplier) (int64, error) {
	const q = `
		INSERT INTO suppliers (code, category, legal_name, trade_name, tax_id, state_tax_number,
			postal_code, street, number, complement, district, city, state, contact_name, phone,
			active, created_at)
		VALUES ($1, $2, $3, $4, $5, nullif($6, ''), $7, $8, $9, nullif($10, ''), $11, $12, $13,
			$14, $15, $16, $17)
		RETURNING id`

	var id int64
	err := r.pool.QueryRow(ctx, q,
		s.Code, s.Category, s.LegalName, s.TradeName, s.TaxID, s.StateTaxNumber,
		s.PostalCode, s.Street, s.Number, s.Complement, s.District, s.City, s.State,
		s.ContactName, s.Phone, s.Active, s.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("suppliers: insert: %w", httpx.MapPgError(err))
	}
	return id, nil
}

// Get loads one supplier by id.
func (r *PgRepository) Get(ctx context.Context, id int64) (*Supplier, error) {
	q := `SELECT ` + supplierColumns + ` FROM suppliers WHERE id = $1`
	s, err := scanSupplier(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		return nil, fmt.Errorf("suppliers: get %d: %w", id, httpx.MapPgError(err))
	}
	return s, nil
}

// List returns suppliers sorted by legal name, optionally by category.
func (r *PgRepository) List(ctx context.Context, category string) ([]Supplier, error) {
	q := `SELECT ` + supplierColumns + ` FROM suppliers`
	var args []any
	if category != "" {
		q += ` WHERE category = $1`
		args = append(args, category)
	}
	q += ` ORDER BY legal_name`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("suppliers: list: %w", err)
	}
	defer rows.Close()

	var out []Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("suppliers: scan: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

// Update rewrites the editable columns.
func (r *PgRepository) Update(ctx context.Context, s *Supplier) error {
	const q = `
		UPDATE suppliers
		SET category = $2, legal_name = $3, trade_name = $4, tax_id = $5,
		    state_tax_number = nullif($6, ''), postal_code = $7, street = $8, number = $9,
		    complement = nullif($10, ''), district = $11, city = $12, state = $13,
		    contact_name = $14, phone = $15, active = $16
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, q,
		s.ID, s.Category, s.LegalName, s.TradeName, s.TaxID, s.StateTaxNumber,
		s.PostalCode, s.Street, s.Number, s.Complement, s.District, s.City, s.State,
		s.ContactName, s.Phone, s.Active)
	if err != nil {
		return fmt.Errorf("suppliers: update %d: %w", s.ID, httpx.MapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suppliers: update %d: %w", s.ID, httpx.ErrNotFound)
	}
	return nil
}

// Delete removes a supplier.
func (r *PgRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM suppliers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("suppliers: delete %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("suppliers: delete %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}
