package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoga28042005/carekart-server/internal/inventory/domain"
	"github.com/yoga28042005/carekart-server/pkg/logging"
)

type fakeStockRepo struct {
	stock map[int]int
	calls int
}

func (f *fakeStockRepo) Decrement(ctx context.Context, productID, quantity int) error {
	f.calls++
	current, ok := f.stock[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	if current < quantity {
		return domain.ErrInsufficientStock
	}
	f.stock[productID] = current - quantity
	return nil
}

func TestRecordPurchase(t *testing.T) {
	repo := &fakeStockRepo{stock: map[int]int{1: 5}}
	svc := NewService(logging.New("test"), repo)

	require.NoError(t, svc.RecordPurchase(context.Background(), 1, 3))
	assert.Equal(t, 2, repo.stock[1])
}

func TestRecordPurchaseValidation(t *testing.T) {
	repo := &fakeStockRepo{stock: map[int]int{1: 5}}
	svc := NewService(logging.New("test"), repo)

	tests := []struct {
		name      string
		productID int
		quantity  int
	}{
		{"zero product id", 0, 1},
		{"negative product id", -4, 1},
		{"zero quantity", 1, 0},
		{"negative quantity", 1, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.RecordPurchase(context.Background(), tt.productID, tt.quantity)
			assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
		})
	}
	assert.Zero(t, repo.calls, "invalid input must not reach the repository")
}

func TestRecordPurchasePropagatesSentinels(t *testing.T) {
	repo := &fakeStockRepo{stock: map[int]int{1: 2}}
	svc := NewService(logging.New("test"), repo)

	assert.ErrorIs(t, svc.RecordPurchase(context.Background(), 99, 1), domain.ErrProductNotFound)
	assert.ErrorIs(t, svc.RecordPurchase(context.Background(), 1, 3), domain.ErrInsufficientStock)
}
