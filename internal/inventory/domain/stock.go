package domain

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("not enough stock")
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
)

// StockLevel is the ledger view of one product.
type StockLevel struct {
	ProductID int
	Quantity  int
}
