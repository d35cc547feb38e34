package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yoga28042005/carekart-server/internal/order/domain"
)

type Repository struct {
	log  *slog.Logger
	pool *pgxpool.Pool
}

func NewRepository(log *slog.Logger, pool *pgxpool.Pool) *Repository {
	return &Repository{log: log, pool: pool}
}

// SaveWithOutbox commits the whole placement in one transaction: order row,
// order_items rows, a locked stock decrement per line, and the outbox event.
// The per-line lock (FOR UPDATE) is what keeps two buyers from both taking
// the last unit.
func (r *Repository) SaveWithOutbox(ctx context.Context, o domain.Order, items []domain.OrderItem, eventType string, payload []byte) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	_, err = tx.Exec(ctx, `INSERT INTO orders (
			order_id, tracking_id, transaction_id, user_id,
			total_amount, payment_method, status,
			customer_name, customer_address, customer_city, customer_phone, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		o.OrderID, o.TrackingID, o.TransactionID, o.UserID,
		o.TotalAmount, o.PaymentMethod, o.Status,
		o.Customer.Name, o.Customer.Address, o.Customer.City, o.Customer.Phone, o.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order %s: %w", o.OrderID, err)
	}

	for _, item := range items {
		var stock int
		err = tx.QueryRow(ctx,
			`SELECT stock_quantity FROM products WHERE id = $1 FOR UPDATE`,
			item.ProductID,
		).Scan(&stock)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("product %d: %w", item.ProductID, domain.ErrProductNotFound)
			}
			return fmt.Errorf("lock product %d: %w", item.ProductID, err)
		}
		if stock < item.Quantity {
			return fmt.Errorf("product %d has %d left: %w", item.ProductID, stock, domain.ErrInsufficientStock)
		}

		_, err = tx.Exec(ctx,
			`UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW() WHERE id = $2`,
			item.Quantity, item.ProductID,
		)
		if err != nil {
			return fmt.Errorf("decrement product %d: %w", item.ProductID, err)
		}

		_, err = tx.Exec(ctx, `INSERT INTO order_items (
				order_id, product_id, product_name, quantity, unit_price, total_price
			) VALUES ($1,$2,$3,$4,$5,$6)`,
			o.OrderID, item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order item %d: %w", item.ProductID, err)
		}
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO outbox (aggregate_type, aggregate_id, type, payload, status) VALUES ($1,$2,$3,$4,'pending')`,
		"order", o.OrderID, eventType, payload,
	)
	if err != nil {
		return fmt.Errorf("insert outbox event: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *Repository) HistoryByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT order_id, tracking_id, total_amount, payment_method, status,
		       customer_name, customer_address, customer_city, customer_phone, created_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query order history for user %d: %w", userID, err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		o := domain.Order{UserID: userID}
		err := rows.Scan(
			&o.OrderID, &o.TrackingID, &o.TotalAmount, &o.PaymentMethod, &o.Status,
			&o.Customer.Name, &o.Customer.Address, &o.Customer.City, &o.Customer.Phone, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("order history iteration: %w", err)
	}

	return orders, nil
}
