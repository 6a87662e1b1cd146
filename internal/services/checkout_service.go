package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/models"
	"luxe-storefront/internal/payments"
)

var ErrEmptyCart = errors.New("no items provided for checkout")

// CheckoutService opens provider checkout sessions and records the matching
// pending order.
type CheckoutService struct {
	provider payments.Provider
	orders   database.OrderStore
	origin   string
}

func NewCheckoutService(provider payments.Provider, orders database.OrderStore, origin string) *CheckoutService {
	return &CheckoutService{
		provider: provider,
		orders:   orders,
		origin:   origin,
	}
}

// CreateSession creates a provider checkout session for the cart and persists
// a pending order keyed by the session id. Guest checkouts (empty userID) are
// persisted too, with no owning user, so the confirmation page can look the
// order up by session id alone.
func (s *CheckoutService) CreateSession(ctx context.Context, userID, email string, items []models.CartItem, amountTotal float64) (*models.CreateCheckoutResponse, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	lineItems := make([]payments.LineItem, 0, len(items))
	for _, item := range items {
		lineItem := payments.LineItem{
			Name:       item.Name,
			UnitAmount: MinorUnits(item.Price),
			Quantity:   int64(item.Quantity),
		}
		if item.Image != "" {
			lineItem.Images = []string{item.Image}
		}
		lineItems = append(lineItems, lineItem)
	}

	session, err := s.provider.CreateSession(ctx, payments.CreateSessionParams{
		LineItems:     lineItems,
		SuccessURL:    s.origin + "/order-confirmation/{CHECKOUT_SESSION_ID}",
		CancelURL:     s.origin + "/cart",
		CustomerEmail: email,
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	now := time.Now()
	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		StripeSessionID: session.ID,
		Amount:          MinorUnits(amountTotal),
		Items:           items,
		Status:          models.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.orders.InsertOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("persist pending order: %w", err)
	}

	return &models.CreateCheckoutResponse{
		SessionID: session.ID,
		URL:       session.URL,
	}, nil
}
