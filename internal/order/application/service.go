package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/yoga28042005/carekart-server/internal/order/domain"
)

type PlaceOrderCommand struct {
	UserID        int
	Items         []domain.OrderItem
	TotalPrice    float64
	PaymentMethod domain.PaymentMethod
	TransactionID *string
	Customer      domain.Customer
}

type PlacedOrder struct {
	OrderID       string
	TrackingID    string
	TransactionID *string
}

type Service struct {
	log  *slog.Logger
	repo OrderRepository
	ids  *domain.IDGenerator
}

func NewService(log *slog.Logger, repo OrderRepository) *Service {
	return &Service{log: log, repo: repo, ids: domain.NewIDGenerator()}
}

// PlaceOrder runs the checkout write path: mint ids, derive the payment
// status, and commit order + lines + stock decrement + OrderPlaced event
// atomically. Any failure leaves no trace of the order.
func (s *Service) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (*PlacedOrder, error) {
	if cmd.PaymentMethod == "" {
		cmd.PaymentMethod = domain.MethodCash
	}

	o, lines, err := domain.NewOrder(
		s.ids.NewOrderID(),
		s.ids.NewTrackingID(),
		cmd.UserID,
		cmd.TotalPrice,
		cmd.PaymentMethod,
		cmd.TransactionID,
		cmd.Customer,
		cmd.Items,
	)
	if err != nil {
		return nil, err
	}

	event := domain.OrderPlaced{
		OrderID:       o.OrderID,
		TrackingID:    o.TrackingID,
		UserID:        o.UserID,
		TotalAmount:   o.TotalAmount,
		PaymentMethod: string(o.PaymentMethod),
		Status:        string(o.Status),
		Items:         lines,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SaveWithOutbox(ctx, o, lines, "OrderPlaced", payload); err != nil {
		return nil, err
	}

	s.log.Info("order placed",
		"order_id", o.OrderID,
		"user_id", o.UserID,
		"total", o.TotalAmount,
		"payment_method", o.PaymentMethod,
	)
	return &PlacedOrder{OrderID: o.OrderID, TrackingID: o.TrackingID, TransactionID: o.TransactionID}, nil
}

func (s *Service) History(ctx context.Context, userID int) ([]domain.Order, error) {
	return s.repo.HistoryByUser(ctx, userID)
}
