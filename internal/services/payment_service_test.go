package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/models"
	"luxe-storefront/internal/payments"
)

func seedOrder(t *testing.T, store database.OrderStore, sessionID, userID string) *models.Order {
	t.Helper()
	order := &models.Order{
		ID:              "0d9f8b2c-5a17-4e4b-9c36-1f2d3e4a5b6c",
		UserID:          userID,
		StripeSessionID: sessionID,
		Amount:          266430,
		Items:           []models.CartItem{{ID: "bag-001", Name: "Monogram Canvas Handbag", Price: 2490, Quantity: 1}},
		Status:          models.OrderStatusPending,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	require.NoError(t, store.InsertOrder(context.Background(), order))
	return order
}

func newPaymentFixture() (*fakeProvider, *database.Memory, *PaymentService) {
	provider := newFakeProvider()
	store := database.NewMemory()
	service := NewPaymentService(provider, store, store, store)
	return provider, store, service
}

func TestPaymentService_MissingSessionID(t *testing.T) {
	_, _, service := newPaymentFixture()

	_, err := service.Verify(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrMissingSessionID)
}

func TestPaymentService_UnknownSession(t *testing.T) {
	_, _, service := newPaymentFixture()

	_, err := service.Verify(context.Background(), "cs_unknown", "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestPaymentService_PaidSession(t *testing.T) {
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusPaid)
	seedOrder(t, store, "cs_1", "user-1")

	result, err := service.Verify(context.Background(), "cs_1", "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, string(models.OrderStatusPaid), result.PaymentStatus)
	require.NotNil(t, result.Session)
	assert.Equal(t, "cs_1", result.Session.ID)

	order, err := store.OrderBySessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)

	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeOrder, notifications[0].Type)
	assert.Equal(t, "Order Confirmed", notifications[0].Title)
	assert.Contains(t, notifications[0].Description, "#0d9f8b2c")
}

func TestPaymentService_DuplicateVerification(t *testing.T) {
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusPaid)
	seedOrder(t, store, "cs_1", "user-1")

	for i := 0; i < 3; i++ {
		result, err := service.Verify(context.Background(), "cs_1", "")
		require.NoError(t, err)
		assert.True(t, result.Success)
	}

	// Same (session, status) pair: at most one notification.
	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, notifications, 1)
}

func TestPaymentService_Cancellation(t *testing.T) {
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusUnpaid)
	seedOrder(t, store, "cs_1", "user-1")

	result, err := service.Verify(context.Background(), "cs_1", "cancelled")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, string(models.OrderStatusCancelled), result.PaymentStatus)

	order, err := store.OrderBySessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeCancelled, notifications[0].Type)
}

func TestPaymentService_CancelledIsTerminal(t *testing.T) {
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusPaid)
	seedOrder(t, store, "cs_1", "user-1")

	_, err := service.Verify(context.Background(), "cs_1", "cancelled")
	require.NoError(t, err)

	// A later paid verification must not silently override a cancelled order.
	result, err := service.Verify(context.Background(), "cs_1", "")
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatusCancelled), result.PaymentStatus)

	order, err := store.OrderBySessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, order.Status)

	// Only the cancellation notification exists.
	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeCancelled, notifications[0].Type)
}

func TestPaymentService_PaidOverrideIgnored(t *testing.T) {
	// Only the cancellation override is honored; a client cannot force an
	// unpaid session to paid.
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusUnpaid)
	seedOrder(t, store, "cs_1", "user-1")

	result, err := service.Verify(context.Background(), "cs_1", "paid")
	require.NoError(t, err)
	assert.Equal(t, string(models.OrderStatusPending), result.PaymentStatus)

	order, err := store.OrderBySessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestPaymentService_NoOrderForSession(t *testing.T) {
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusPaid)

	// Valid session never captured as an order: no-op success.
	result, err := service.Verify(context.Background(), "cs_1", "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, string(models.OrderStatusPaid), result.PaymentStatus)

	_, err = store.OrderBySessionID(context.Background(), "cs_1")
	assert.ErrorIs(t, err, database.ErrOrderNotFound)
}

func TestPaymentService_GuestOrderSkipsNotification(t *testing.T) {
	provider, store, service := newPaymentFixture()
	provider.addSession("cs_1", payments.PaymentStatusPaid)
	seedOrder(t, store, "cs_1", "")

	result, err := service.Verify(context.Background(), "cs_1", "")
	require.NoError(t, err)
	assert.True(t, result.Success)

	order, err := store.OrderBySessionID(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, order.Status)
}

type failingNotificationStore struct {
	database.NotificationStore
}

func (failingNotificationStore) InsertNotification(ctx context.Context, n *models.Notification) error {
	return errors.New("notifications table unavailable")
}

func TestPaymentService_NotificationFailureSwallowed(t *testing.T) {
	provider := newFakeProvider()
	store := database.NewMemory()
	service := NewPaymentService(provider, store, failingNotificationStore{store}, store)

	provider.addSession("cs_1", payments.PaymentStatusPaid)
	seedOrder(t, store, "cs_1", "user-1")

	// The payment outcome is more important than the side channel.
	result, err := service.Verify(context.Background(), "cs_1", "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, string(models.OrderStatusPaid), result.PaymentStatus)
}
