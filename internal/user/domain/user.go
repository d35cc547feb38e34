package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")

type Profile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ProfileUpdate carries the email change plus the shipping details that get
// backfilled onto the customer's most recent order.
type ProfileUpdate struct {
	Email           string
	CustomerName    string
	CustomerAddress string
	CustomerCity    string
	CustomerPhone   string
}

type Address struct {
	ID        int    `json:"id"`
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}
