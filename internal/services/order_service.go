package services

import (
	"context"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/models"
)

// OrderService reads persisted orders for the profile page and the guest
// confirmation lookup. Order mutation belongs to CheckoutService and
// PaymentService.
type OrderService struct {
	orders database.OrderStore
}

func NewOrderService(orders database.OrderStore) *OrderService {
	return &OrderService{orders: orders}
}

// OrdersForUser lists a user's orders, newest first.
func (s *OrderService) OrdersForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.orders.OrdersByUser(ctx, userID)
}

// OrderBySession looks an order up by its checkout session id. This is the
// lookup path used by guest confirmations, which have no owning user.
func (s *OrderService) OrderBySession(ctx context.Context, sessionID string) (*models.Order, error) {
	return s.orders.OrderBySessionID(ctx, sessionID)
}
