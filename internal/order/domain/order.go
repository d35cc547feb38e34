package domain

import (
	"errors"
	"math"
	"time"
)

type PaymentMethod string

const (
	MethodCash     PaymentMethod = "cash"
	MethodCard     PaymentMethod = "card"
	MethodUPI      PaymentMethod = "upi"
	MethodRazorpay PaymentMethod = "razorpay"
)

type OrderStatus string

const (
	// StatusPaid marks orders settled through an instant rail before they
	// reach us (upi, gateway checkout).
	StatusPaid       OrderStatus = "paid"
	StatusProcessing OrderStatus = "processing"
)

var (
	ErrNoItems              = errors.New("order has no items")
	ErrMissingTransactionID = errors.New("upi order requires a transaction id")
	ErrInsufficientStock    = errors.New("not enough stock")
	ErrProductNotFound      = errors.New("product not found")
)

type Customer struct {
	Name    string
	Address string
	City    string
	Phone   string
}

type Order struct {
	OrderID       string
	TrackingID    string
	TransactionID *string
	UserID        int
	TotalAmount   float64
	PaymentMethod PaymentMethod
	Status        OrderStatus
	Customer      Customer
	CreatedAt     time.Time
}

type OrderItem struct {
	ProductID   int
	ProductName string
	Quantity    int
	UnitPrice   float64
	TotalPrice  float64
}

// PaymentStatusFor derives the initial order status from how the customer
// paid: upi and razorpay settle before the order is saved, everything else
// stays in processing.
func PaymentStatusFor(method PaymentMethod) OrderStatus {
	if method == MethodUPI || method == MethodRazorpay {
		return StatusPaid
	}
	return StatusProcessing
}

// NewOrder assembles an order from checkout input. Line quantities default to
// 1 and line totals are price x quantity rounded to two decimals. The total
// is the checkout total as presented to the customer, not a recomputation.
// A transaction id is kept only for upi payments and is mandatory there.
func NewOrder(orderID, trackingID string, userID int, total float64, method PaymentMethod, transactionID *string, customer Customer, items []OrderItem) (Order, []OrderItem, error) {
	if len(items) == 0 {
		return Order{}, nil, ErrNoItems
	}

	lines := make([]OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		item.TotalPrice = Round2(item.UnitPrice * float64(item.Quantity))
		lines = append(lines, item)
	}

	var txnID *string
	if method == MethodUPI {
		if transactionID == nil || *transactionID == "" {
			return Order{}, nil, ErrMissingTransactionID
		}
		txnID = transactionID
	}

	o := Order{
		OrderID:       orderID,
		TrackingID:    trackingID,
		TransactionID: txnID,
		UserID:        userID,
		TotalAmount:   Round2(total),
		PaymentMethod: method,
		Status:        PaymentStatusFor(method),
		Customer:      customer,
		CreatedAt:     time.Now().UTC(),
	}
	return o, lines, nil
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
