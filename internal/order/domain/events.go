package domain

// OrderPlaced is published on the order events topic once the placement
// transaction commits.
type OrderPlaced struct {
	OrderID       string      `json:"order_id"`
	TrackingID    string      `json:"tracking_id"`
	UserID        int         `json:"user_id"`
	TotalAmount   float64     `json:"total_amount"`
	PaymentMethod string      `json:"payment_method"`
	Status        string      `json:"status"`
	Items         []OrderItem `json:"items"`
}
