package wishlist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrDuplicateItem = errors.New("product already in wishlist")
	ErrItemNotFound  = errors.New("wishlist item not found")
)

// Item is a wishlist row joined with its product.
type Item struct {
	ID            int       `json:"id"`
	ProductID     int       `json:"product_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"image_url"`
	AddedAt       time.Time `json:"added_at"`
}

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Add(ctx context.Context, userID, productID int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO wishlist (user_id, product_id) VALUES ($1, $2)`,
		userID, productID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateItem
		}
		return fmt.Errorf("insert wishlist item: %w", err)
	}
	return nil
}

func (r *Repository) ByUser(ctx context.Context, userID int) ([]Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT w.id, p.id, p.name, p.description, p.price, p.stock_quantity,
		       p.category, p.image_url, w.created_at
		FROM wishlist w
		JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY w.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("query wishlist: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Name, &it.Description,
			&it.Price, &it.StockQuantity, &it.Category, &it.ImageURL, &it.AddedAt); err != nil {
			return nil, fmt.Errorf("scan wishlist item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *Repository) Remove(ctx context.Context, id, ownerID int) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM wishlist WHERE id = $1 AND ($2 = 0 OR user_id = $2)`,
		id, ownerID)
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
