package application

import (
	"context"
	"log/slog"

	"github.com/yoga28042005/carekart-server/internal/catalog/domain"
)

type Service struct {
	log    *slog.Logger
	repo   ProductRepository
	images ImageStore
}

func NewService(log *slog.Logger, repo ProductRepository, images ImageStore) *Service {
	return &Service{log: log, repo: repo, images: images}
}

func (s *Service) Categories(ctx context.Context) ([]string, error) {
	return s.repo.Categories(ctx)
}

// ListByCategory returns the products of a category with their images inlined.
// A product whose image file is missing still ships, with empty image data.
func (s *Service) ListByCategory(ctx context.Context, category string) ([]domain.ProductListing, error) {
	products, err := s.repo.ByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	listings := make([]domain.ProductListing, 0, len(products))
	for _, p := range products {
		data, err := s.images.InlineBase64(p.ImageURL)
		if err != nil {
			s.log.Warn("product image unavailable", "product_id", p.ID, "image", p.ImageURL, "error", err)
			data = ""
		}
		listings = append(listings, domain.ProductListing{
			ID:            p.ID,
			Name:          p.Name,
			Description:   p.Description,
			Price:         p.Price,
			StockQuantity: p.StockQuantity,
			ImageData:     data,
		})
	}
	return listings, nil
}

func (s *Service) Product(ctx context.Context, id int) (domain.Product, error) {
	return s.repo.ByID(ctx, id)
}

func (s *Service) Image(filename string) (string, error) {
	return s.images.DataURI(filename)
}
