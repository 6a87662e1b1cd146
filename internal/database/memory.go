package database

import (
	"context"
	"sync"

	"luxe-storefront/internal/models"
)

// Memory implements the stores with in-process maps. It backs local
// development runs without a DATABASE_URL and the service tests. The intent
// map gives the same exactly-once claim semantics within one process, but
// only the Postgres store makes the claim durable.
type Memory struct {
	mu            sync.RWMutex
	orders        map[string]*models.Order          // session id -> order
	userOrders    map[string][]string               // user id -> session ids, newest first
	notifications map[string][]*models.Notification // user id -> notifications, newest first
	intents       map[string]struct{}               // session id + status
}

func NewMemory() *Memory {
	return &Memory{
		orders:        make(map[string]*models.Order),
		userOrders:    make(map[string][]string),
		notifications: make(map[string][]*models.Notification),
		intents:       make(map[string]struct{}),
	}
}

func (m *Memory) InsertOrder(ctx context.Context, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *order
	m.orders[order.StripeSessionID] = &stored
	if order.UserID != "" {
		m.userOrders[order.UserID] = append([]string{order.StripeSessionID}, m.userOrders[order.UserID]...)
	}
	return nil
}

func (m *Memory) OrderBySessionID(ctx context.Context, sessionID string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, exists := m.orders[sessionID]
	if !exists {
		return nil, ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *Memory) UpdateOrderStatus(ctx context.Context, sessionID string, status models.OrderStatus) (models.OrderStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[sessionID]
	if !exists {
		return "", ErrOrderNotFound
	}
	if order.Status == models.OrderStatusCancelled {
		return order.Status, nil
	}
	order.Status = status
	return status, nil
}

func (m *Memory) OrdersByUser(ctx context.Context, userID string) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	orders := []models.Order{}
	for _, sessionID := range m.userOrders[userID] {
		if order, exists := m.orders[sessionID]; exists {
			orders = append(orders, *order)
		}
	}
	return orders, nil
}

func (m *Memory) InsertNotification(ctx context.Context, n *models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := *n
	m.notifications[n.UserID] = append([]*models.Notification{&stored}, m.notifications[n.UserID]...)
	return nil
}

func (m *Memory) NotificationsByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	notifications := []models.Notification{}
	for _, n := range m.notifications[userID] {
		notifications = append(notifications, *n)
	}
	return notifications, nil
}

func (m *Memory) MarkNotificationRead(ctx context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.notifications[userID] {
		if n.ID == id {
			n.Read = true
			return nil
		}
	}
	return ErrNotificationNotFound
}

func (m *Memory) MarkAllNotificationsRead(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, n := range m.notifications[userID] {
		n.Read = true
	}
	return nil
}

func (m *Memory) ClearNotifications(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.notifications, userID)
	return nil
}

func (m *Memory) ClaimIntent(ctx context.Context, sessionID string, status models.OrderStatus) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := sessionID + ":" + string(status)
	if _, claimed := m.intents[key]; claimed {
		return false, nil
	}
	m.intents[key] = struct{}{}
	return true, nil
}
