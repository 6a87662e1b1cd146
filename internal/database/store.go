package database

import (
	"context"
	"errors"

	"luxe-storefront/internal/models"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrNotificationNotFound = errors.New("notification not found")
)

type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	OrderBySessionID(ctx context.Context, sessionID string) (*models.Order, error)
	// UpdateOrderStatus applies a status transition, refusing to move an
	// order out of the terminal cancelled state, and returns the status the
	// order ends up with.
	UpdateOrderStatus(ctx context.Context, sessionID string, status models.OrderStatus) (models.OrderStatus, error)
	OrdersByUser(ctx context.Context, userID string) ([]models.Order, error)
}

type NotificationStore interface {
	InsertNotification(ctx context.Context, n *models.Notification) error
	NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, userID, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID string) error
	ClearNotifications(ctx context.Context, userID string) error
}

// IntentStore records which (session, status) pairs have already produced an
// order notification. The claim must be durable and shared across instances;
// an in-process set is not enough.
type IntentStore interface {
	// ClaimIntent returns true exactly once per (sessionID, status) pair.
	ClaimIntent(ctx context.Context, sessionID string, status models.OrderStatus) (bool, error)
}
