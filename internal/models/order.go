package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusPaid       OrderStatus = "paid"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Order is created pending when a checkout session is opened and keyed by the
// provider session id. Payment verification moves it to paid or cancelled;
// cancelled is terminal. Orders are never deleted.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id,omitempty"` // empty for guest checkouts
	StripeSessionID string      `json:"stripe_session_id"`
	Amount          int64       `json:"amount"` // minor units
	Items           []CartItem  `json:"items"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
