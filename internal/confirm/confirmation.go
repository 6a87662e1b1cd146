package confirm

import (
	"context"
	"fmt"
	"log"
	"sync"

	"luxe-storefront/internal/models"
	"luxe-storefront/internal/services"
)

type State string

const (
	StateVerifying State = "verifying"
	StateConfirmed State = "confirmed"
	StateCancelled State = "cancelled"
	StateError     State = "error"
)

// Toaster renders a transient user-facing message.
type Toaster interface {
	Show(title, description string)
}

// LogToaster is the headless fallback.
type LogToaster struct{}

func (LogToaster) Show(title, description string) {
	log.Printf("toast: %s - %s", title, description)
}

// shownToasts deduplicates toast display across view re-renders for the
// lifetime of the process. This is a presentation cache only; durable
// notification dedup happens server-side in the intent table.
var (
	shownMu     sync.Mutex
	shownToasts = make(map[string]struct{})
)

// Confirmation drives a single order-confirmation view:
// verifying -> confirmed | cancelled | error.
type Confirmation struct {
	client  *Client
	cart    *services.Cart
	toaster Toaster
	state   State
}

func NewConfirmation(client *Client, cart *services.Cart, toaster Toaster) *Confirmation {
	if toaster == nil {
		toaster = LogToaster{}
	}
	return &Confirmation{
		client:  client,
		cart:    cart,
		toaster: toaster,
		state:   StateVerifying,
	}
}

func (c *Confirmation) State() State {
	return c.state
}

// Confirm verifies the session after the user lands on the confirmation
// route. The cart is cleared only once verification reports a completed
// payment. Transport failures land in the error state with no automatic
// retry.
func (c *Confirmation) Confirm(ctx context.Context, sessionID string) State {
	resp, err := c.client.VerifyPayment(ctx, sessionID, "")
	if err != nil {
		log.Printf("failed to verify payment for session %s: %v", sessionID, err)
		c.state = StateError
		return c.state
	}

	switch {
	case resp.Success && resp.PaymentStatus == string(models.OrderStatusPaid):
		c.state = StateConfirmed
		if c.cart != nil {
			c.cart.Clear()
		}
		c.showToast(sessionID, models.NotificationTypeOrder)
	case resp.Success && resp.PaymentStatus == string(models.OrderStatusCancelled):
		c.state = StateCancelled
		c.showToast(sessionID, models.NotificationTypeCancelled)
	default:
		// The session exists but the payment never completed.
		log.Printf("session %s verified with status %q", sessionID, resp.PaymentStatus)
		c.state = StateError
	}
	return c.state
}

// Cancel runs the explicit cancellation action from the confirmation view.
func (c *Confirmation) Cancel(ctx context.Context, sessionID string) State {
	resp, err := c.client.VerifyPayment(ctx, sessionID, string(models.OrderStatusCancelled))
	if err != nil {
		log.Printf("failed to cancel session %s: %v", sessionID, err)
		c.state = StateError
		return c.state
	}
	if !resp.Success {
		c.state = StateError
		return c.state
	}

	c.state = StateCancelled
	c.showToast(sessionID, models.NotificationTypeCancelled)
	return c.state
}

func (c *Confirmation) showToast(orderNumber string, typ models.NotificationType) {
	key := orderNumber + "-" + string(typ)

	shownMu.Lock()
	if _, shown := shownToasts[key]; shown {
		shownMu.Unlock()
		return
	}
	shownToasts[key] = struct{}{}
	shownMu.Unlock()

	if typ == models.NotificationTypeCancelled {
		c.toaster.Show("Order Cancelled", fmt.Sprintf("Your order #%s has been cancelled.", orderNumber))
		return
	}
	c.toaster.Show("Order Confirmed", fmt.Sprintf("Thank you for your purchase. Your order #%s has been confirmed.", orderNumber))
}

// resetShownToasts clears the presentation cache; tests only.
func resetShownToasts() {
	shownMu.Lock()
	defer shownMu.Unlock()
	shownToasts = make(map[string]struct{})
}
