package application

import (
	"context"

	"github.com/yoga28042005/carekart-server/internal/order/domain"
)

type OrderRepository interface {
	// SaveWithOutbox persists the order, its lines, the per-line stock
	// decrement, and the outbox event in one transaction.
	SaveWithOutbox(ctx context.Context, o domain.Order, items []domain.OrderItem, eventType string, payload []byte) error
	HistoryByUser(ctx context.Context, userID int) ([]domain.Order, error)
}
