package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/models"
	"luxe-storefront/internal/services"
)

func newFeedRouter(store *database.Memory) *gin.Engine {
	gin.SetMode(gin.TestMode)

	notificationService := services.NewNotificationService(store)
	orderService := services.NewOrderService(store)

	notificationHandler := NewNotificationHandler(notificationService)
	orderHandler := NewOrderHandler(orderService)

	router := gin.New()
	router.GET("/api/notifications", notificationHandler.ListNotifications)
	router.POST("/api/notifications/read-all", notificationHandler.MarkAllRead)
	router.POST("/api/notifications/:id/read", notificationHandler.MarkRead)
	router.DELETE("/api/notifications", notificationHandler.ClearNotifications)
	router.POST("/api/support", notificationHandler.CreateSupportRequest)
	router.GET("/api/orders", orderHandler.ListOrders)
	router.GET("/api/orders/session/:session_id", orderHandler.GetOrderBySession)
	return router
}

func doRequest(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestListNotifications_RequiresAuth(t *testing.T) {
	router := newFeedRouter(database.NewMemory())

	recorder := doRequest(router, http.MethodGet, "/api/notifications", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestNotificationFeed(t *testing.T) {
	store := database.NewMemory()
	router := newFeedRouter(store)
	auth := map[string]string{"X-User-ID": "user-1"}

	require.NoError(t, store.InsertNotification(context.Background(), &models.Notification{
		ID: "n-1", UserID: "user-1", Title: "Order Confirmed", Type: models.NotificationTypeOrder,
	}))
	require.NoError(t, store.InsertNotification(context.Background(), &models.Notification{
		ID: "n-2", UserID: "user-1", Title: "Order Cancelled", Type: models.NotificationTypeCancelled,
	}))

	recorder := doRequest(router, http.MethodGet, "/api/notifications", auth)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data        []models.Notification `json:"data"`
		UnreadCount int                   `json:"unread_count"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, 2, body.UnreadCount)

	recorder = doRequest(router, http.MethodPost, "/api/notifications/n-1/read", auth)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/notifications/n-404/read", auth)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = doRequest(router, http.MethodPost, "/api/notifications/read-all", auth)
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = doRequest(router, http.MethodDelete, "/api/notifications", auth)
	assert.Equal(t, http.StatusOK, recorder.Code)

	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestCreateSupportRequest(t *testing.T) {
	store := database.NewMemory()
	router := newFeedRouter(store)

	recorder := postJSON(router, "/api/support",
		models.SupportRequest{Subject: "Damaged handbag", Message: "The clasp arrived broken."},
		map[string]string{"X-User-ID": "user-1"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	notifications, err := store.NotificationsByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeSystem, notifications[0].Type)
	assert.Contains(t, notifications[0].Description, "Damaged handbag")
}

func TestGetOrderBySession(t *testing.T) {
	store := database.NewMemory()
	router := newFeedRouter(store)

	require.NoError(t, store.InsertOrder(context.Background(), &models.Order{
		ID: "order-1", StripeSessionID: "cs_1", Amount: 79000, Status: models.OrderStatusPaid,
	}))

	recorder := doRequest(router, http.MethodGet, "/api/orders/session/cs_1", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "order-1", body.Data.ID)

	recorder = doRequest(router, http.MethodGet, "/api/orders/session/cs_missing", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListOrders(t *testing.T) {
	store := database.NewMemory()
	router := newFeedRouter(store)

	require.NoError(t, store.InsertOrder(context.Background(), &models.Order{
		ID: "order-1", UserID: "user-1", StripeSessionID: "cs_1", Status: models.OrderStatusPaid,
	}))
	require.NoError(t, store.InsertOrder(context.Background(), &models.Order{
		ID: "order-2", UserID: "user-1", StripeSessionID: "cs_2", Status: models.OrderStatusPending,
	}))

	recorder := doRequest(router, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/api/orders", map[string]string{"X-User-ID": "user-1"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "order-2", body.Data[0].ID, "newest first")
}
