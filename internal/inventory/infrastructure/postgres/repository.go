package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yoga28042005/carekart-server/internal/inventory/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// Decrement locks the product row, checks the level, and subtracts. The lock
// serializes concurrent purchases of the same product so stock can never go
// negative: for the last unit exactly one caller commits.
func (r *Repository) Decrement(ctx context.Context, productID, quantity int) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var stock int
	err = tx.QueryRow(ctx,
		`SELECT stock_quantity FROM products WHERE id = $1 FOR UPDATE`,
		productID,
	).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("lock product %d: %w", productID, err)
	}

	if stock < quantity {
		return fmt.Errorf("product %d has %d left, wanted %d: %w", productID, stock, quantity, domain.ErrInsufficientStock)
	}

	_, err = tx.Exec(ctx,
		`UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW() WHERE id = $2`,
		quantity, productID,
	)
	if err != nil {
		return fmt.Errorf("decrement product %d: %w", productID, err)
	}

	return tx.Commit(ctx)
}
