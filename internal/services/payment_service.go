package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/models"
	"luxe-storefront/internal/payments"
)

var (
	ErrMissingSessionID = errors.New("no session ID provided")
	ErrInvalidSession   = errors.New("invalid session ID")
)

// PaymentService reconciles a provider checkout session with the persisted
// order and emits at most one notification per (session, status) pair.
type PaymentService struct {
	provider      payments.Provider
	orders        database.OrderStore
	notifications database.NotificationStore
	intents       database.IntentStore
}

func NewPaymentService(provider payments.Provider, orders database.OrderStore, notifications database.NotificationStore, intents database.IntentStore) *PaymentService {
	return &PaymentService{
		provider:      provider,
		orders:        orders,
		notifications: notifications,
		intents:       intents,
	}
}

type VerifyResult struct {
	Success       bool              `json:"success"`
	PaymentStatus string            `json:"payment_status"`
	Session       *payments.Session `json:"session"`
}

// Verify resolves the effective status of a checkout session and applies it
// to the persisted order. The provider's reported payment status is
// authoritative; a client-supplied status is honored only for the
// cancellation path. The order update and the notification insert are not
// transactional, so callers should assume at-least-once semantics for the
// side effects.
func (s *PaymentService) Verify(ctx context.Context, sessionID, requestedStatus string) (*VerifyResult, error) {
	if sessionID == "" {
		return nil, ErrMissingSessionID
	}

	session, err := s.provider.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, payments.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	status := effectiveStatus(session, requestedStatus)

	order, err := s.orders.OrderBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, database.ErrOrderNotFound) {
			// Valid session that was never captured as an order. Nothing to
			// update; still report the resolved status.
			return &VerifyResult{Success: true, PaymentStatus: string(status), Session: session}, nil
		}
		return nil, fmt.Errorf("look up order: %w", err)
	}

	final := order.Status
	if status == models.OrderStatusPaid || status == models.OrderStatusCancelled {
		final, err = s.orders.UpdateOrderStatus(ctx, sessionID, status)
		if err != nil {
			return nil, fmt.Errorf("update order status: %w", err)
		}
		// The store refuses to move a cancelled order; only notify for the
		// transition that actually took effect.
		if final == status {
			s.notify(ctx, order, status)
		}
	}

	return &VerifyResult{Success: true, PaymentStatus: string(final), Session: session}, nil
}

// effectiveStatus trusts the provider for payment confirmation and the
// client only for cancellation.
func effectiveStatus(session *payments.Session, requested string) models.OrderStatus {
	if requested == string(models.OrderStatusCancelled) {
		return models.OrderStatusCancelled
	}
	if session.PaymentStatus == payments.PaymentStatusPaid {
		return models.OrderStatusPaid
	}
	return models.OrderStatusPending
}

// notify inserts the order notification if this (session, status) pair has
// not been claimed yet. Failures here never fail verification: the payment
// outcome matters more than the side channel.
func (s *PaymentService) notify(ctx context.Context, order *models.Order, status models.OrderStatus) {
	if order.UserID == "" {
		return
	}

	claimed, err := s.intents.ClaimIntent(ctx, order.StripeSessionID, status)
	if err != nil {
		log.Printf("failed to claim notification intent for session %s: %v", order.StripeSessionID, err)
		return
	}
	if !claimed {
		return
	}

	shortID := order.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	notification := &models.Notification{
		ID:        uuid.NewString(),
		UserID:    order.UserID,
		CreatedAt: time.Now(),
	}
	if status == models.OrderStatusCancelled {
		notification.Type = models.NotificationTypeCancelled
		notification.Title = "Order Cancelled"
		notification.Description = fmt.Sprintf("Your order #%s has been cancelled.", shortID)
	} else {
		notification.Type = models.NotificationTypeOrder
		notification.Title = "Order Confirmed"
		notification.Description = fmt.Sprintf("Your order #%s has been confirmed and is being processed.", shortID)
	}

	if err := s.notifications.InsertNotification(ctx, notification); err != nil {
		log.Printf("failed to create %s notification for order %s: %v", notification.Type, order.ID, err)
	}
}
