package payments

import (
	"context"
	"errors"
	"time"
)

// ErrSessionNotFound is returned when the provider does not recognize a
// checkout session id.
var ErrSessionNotFound = errors.New("checkout session not found")

const (
	PaymentStatusPaid   = "paid"
	PaymentStatusUnpaid = "unpaid"
)

// LineItem is one provider-side checkout line. UnitAmount is in minor units.
type LineItem struct {
	Name       string
	Images     []string
	UnitAmount int64
	Quantity   int64
}

type CreateSessionParams struct {
	LineItems     []LineItem
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
}

// Session is the provider's view of a checkout session. It is returned to
// verification callers as audit metadata.
type Session struct {
	ID            string    `json:"id"`
	URL           string    `json:"url,omitempty"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	AmountTotal   int64     `json:"amount_total"`
	Currency      string    `json:"currency,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Provider wraps the hosted payment processor.
type Provider interface {
	CreateSession(ctx context.Context, params CreateSessionParams) (*Session, error)
	GetSession(ctx context.Context, id string) (*Session, error)
}
