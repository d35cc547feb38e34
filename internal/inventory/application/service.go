package application

import (
	"context"
	"log/slog"

	"github.com/yoga28042005/carekart-server/internal/inventory/domain"
)

type Service struct {
	log  *slog.Logger
	repo StockRepository
}

func NewService(log *slog.Logger, repo StockRepository) *Service {
	return &Service{log: log, repo: repo}
}

// RecordPurchase is the standalone stock endpoint kept for clients that still
// call it after placing an order; checkout itself decrements stock inside the
// placement transaction.
func (s *Service) RecordPurchase(ctx context.Context, productID, quantity int) error {
	if productID <= 0 || quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if err := s.repo.Decrement(ctx, productID, quantity); err != nil {
		return err
	}
	s.log.Info("stock decremented", "product_id", productID, "quantity", quantity)
	return nil
}
