package application

import (
	"context"
)

type StockRepository interface {
	// Decrement takes quantity units off the product's stock inside a
	// transaction that row-locks the product first. It fails with the
	// domain sentinels when the product is missing or the stock too low.
	Decrement(ctx context.Context, productID, quantity int) error
}
