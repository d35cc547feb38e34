package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yoga28042005/carekart-server/internal/user/domain"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Profile(ctx context.Context, userID int) (domain.Profile, error) {
	var p domain.Profile
	err := r.pool.QueryRow(ctx, `
		SELECT username, email FROM users WHERE user_id = $1`, userID).
		Scan(&p.Username, &p.Email)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Profile{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	return p, nil
}

func (r *Repository) UpdateProfile(ctx context.Context, userID int, update domain.ProfileUpdate) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE users SET email = $1 WHERE user_id = $2`, update.Email, userID)
	if err != nil {
		return fmt.Errorf("update email: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	// Backfill the shipping details on the latest order only.
	_, err = tx.Exec(ctx, `
		UPDATE orders SET
			customer_name = $1,
			customer_address = $2,
			customer_city = $3,
			customer_phone = $4
		WHERE order_id = (
			SELECT order_id FROM orders
			WHERE user_id = $5
			ORDER BY created_at DESC
			LIMIT 1
		)`,
		update.CustomerName, update.CustomerAddress, update.CustomerCity, update.CustomerPhone, userID)
	if err != nil {
		return fmt.Errorf("backfill latest order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit profile update: %w", err)
	}
	return nil
}

func (r *Repository) ByUser(ctx context.Context, userID int) ([]domain.Address, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, name, email, address, city, phone, is_default
		FROM user_addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.Address
	for rows.Next() {
		var a domain.Address
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.Email, &a.Address,
			&a.City, &a.Phone, &a.IsDefault); err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}

func (r *Repository) Add(ctx context.Context, address domain.Address) (domain.Address, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Address{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if address.IsDefault {
		if _, err := tx.Exec(ctx, `
			UPDATE user_addresses SET is_default = FALSE WHERE user_id = $1`,
			address.UserID); err != nil {
			return domain.Address{}, fmt.Errorf("clear default address: %w", err)
		}
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO user_addresses (user_id, name, email, address, city, phone, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		address.UserID, address.Name, address.Email, address.Address,
		address.City, address.Phone, address.IsDefault).Scan(&address.ID)
	if err != nil {
		return domain.Address{}, fmt.Errorf("insert address: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Address{}, fmt.Errorf("commit address: %w", err)
	}
	return address, nil
}
