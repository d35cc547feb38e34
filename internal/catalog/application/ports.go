package application

import (
	"context"

	"github.com/yoga28042005/carekart-server/internal/catalog/domain"
)

type ProductRepository interface {
	Categories(ctx context.Context) ([]string, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	ByID(ctx context.Context, id int) (domain.Product, error)
}

// ImageStore resolves a stored image reference to inline base64 data:
// raw base64 for listing rows, a data: URI for direct rendering.
type ImageStore interface {
	InlineBase64(filename string) (string, error)
	DataURI(filename string) (string, error)
}
