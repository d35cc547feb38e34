package application

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoga28042005/carekart-server/internal/order/domain"
	"github.com/yoga28042005/carekart-server/pkg/logging"
)

type recordingRepo struct {
	saved      []domain.Order
	savedLines [][]domain.OrderItem
	payloads   [][]byte
	err        error
}

func (r *recordingRepo) SaveWithOutbox(ctx context.Context, o domain.Order, items []domain.OrderItem, eventType string, payload []byte) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, o)
	r.savedLines = append(r.savedLines, items)
	r.payloads = append(r.payloads, payload)
	return nil
}

func (r *recordingRepo) HistoryByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return nil, nil
}

func TestPlaceOrderPersistsOrderAndEvent(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(logging.New("test"), repo)

	placed, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:     42,
		TotalPrice: 200,
		Items: []domain.OrderItem{
			{ProductID: 1, ProductName: "Thermometer", Quantity: 2, UnitPrice: 100},
		},
		PaymentMethod: domain.MethodCash,
		Customer:      domain.Customer{Name: "Ram", City: "Chennai"},
	})
	require.NoError(t, err)

	require.Len(t, repo.saved, 1)
	o := repo.saved[0]
	assert.Equal(t, placed.OrderID, o.OrderID)
	assert.Equal(t, placed.TrackingID, o.TrackingID)
	assert.Equal(t, 200.0, o.TotalAmount)
	assert.Equal(t, domain.StatusProcessing, o.Status)
	assert.Nil(t, placed.TransactionID)

	var event domain.OrderPlaced
	require.NoError(t, json.Unmarshal(repo.payloads[0], &event))
	assert.Equal(t, o.OrderID, event.OrderID)
	require.Len(t, event.Items, 1)
	assert.Equal(t, 200.0, event.Items[0].TotalPrice)
}

func TestPlaceOrderDefaultsPaymentMethodToCash(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(logging.New("test"), repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:     1,
		TotalPrice: 10,
		Items:      []domain.OrderItem{{ProductID: 5, ProductName: "Mask", Quantity: 1, UnitPrice: 10}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MethodCash, repo.saved[0].PaymentMethod)
}

func TestPlaceOrderUPIRequiresTransactionID(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(logging.New("test"), repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:        1,
		TotalPrice:    10,
		PaymentMethod: domain.MethodUPI,
		Items:         []domain.OrderItem{{ProductID: 5, ProductName: "Mask", Quantity: 1, UnitPrice: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrMissingTransactionID)
	assert.Empty(t, repo.saved)
}

func TestPlaceOrderPropagatesStockFailure(t *testing.T) {
	repo := &recordingRepo{err: domain.ErrInsufficientStock}
	svc := NewService(logging.New("test"), repo)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{
		UserID:     1,
		TotalPrice: 10,
		Items:      []domain.OrderItem{{ProductID: 5, ProductName: "Mask", Quantity: 99, UnitPrice: 10}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestPlaceOrderIDsAdvanceAcrossCalls(t *testing.T) {
	repo := &recordingRepo{}
	svc := NewService(logging.New("test"), repo)

	items := []domain.OrderItem{{ProductID: 1, ProductName: "x", Quantity: 1, UnitPrice: 1}}
	first, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{UserID: 1, TotalPrice: 1, Items: items})
	require.NoError(t, err)
	second, err := svc.PlaceOrder(context.Background(), PlaceOrderCommand{UserID: 1, TotalPrice: 1, Items: items})
	require.NoError(t, err)

	assert.NotEqual(t, first.OrderID, second.OrderID)
	assert.Less(t, first.OrderID, second.OrderID)
}
