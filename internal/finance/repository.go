package finance

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/XsellSolucoes/Sistema-Operacional-Xsell-sub000/internal/platform/db"
)

// PgRepository is the PostgreSQL implementation of Repository. The cashbox
// is a single row; movements are an append-only ledger beside it.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PgRepository.
func NewRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

// Balance reads the current balance, creating the row on first use.
func (r *PgRepository) Balance(ctx context.Context) (*Cashbox, error) {
	const q = `
		INSERT INTO cashbox (id, balance, updated_at)
		VALUES (1, 0, now())
		ON CONFLICT (id) DO UPDATE SET id = cashbox.id
		RETURNING balance, updated_at`

	var box Cashbox
	if err := r.pool.QueryRow(ctx, q).Scan(&box.Balance, &box.UpdatedAt); err != nil {
		return nil, fmt.Errorf("finance: read cashbox: %w", err)
	}
	return &box, nil
}

// Apply records a movement and adjusts the balance in one transaction.
func (r *PgRepository) Apply(ctx context.Context, m Movement) (*Cashbox, error) {
	delta := m.Amount
	if m.Kind == MovementDebit {
		delta = -m.Amount
	}

	var box Cashbox
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO cash_movements (kind, amount, description, reference_id, created_at)
			VALUES ($1, $2, $3, $4, now())`
		if _, err := tx.Exec(ctx, insert, m.Kind, m.Amount, m.Description, m.ReferenceID); err != nil {
			return fmt.Errorf("finance: insert movement: %w", err)
		}

		const update = `
			INSERT INTO cashbox (id, balance, updated_at)
			VALUES (1, $1, now())
			ON CONFLICT (id) DO UPDATE
			SET balance = cashbox.balance + $1, updated_at = now()
			RETURNING balance, updated_at`
		if err := tx.QueryRow(ctx, update, delta).Scan(&box.Balance, &box.UpdatedAt); err != nil {
			return fmt.Errorf("finance: apply movement: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// RecentMovements returns the newest movements first.
func (r *PgRepository) RecentMovements(ctx context.Context, limit int) ([]Movement, error) {
	const q = `
		SELECT id, kind, amount, description, coalesce(reference_id, ''), created_at
		FROM cash_movements
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("finance: list movements: %w", err)
	}
	defer rows.Close()

	var out []Movement
	for rows.Next() {
		var m Movement
		if err := rows.Scan(&m.ID, &m.Kind, &m.Amount, &m.Description, &m.ReferenceID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("finance: scan movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
