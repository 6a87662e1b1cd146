package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"luxe-storefront/internal/database"
	"luxe-storefront/internal/models"
)

// NotificationService manages the per-user notification feed.
type NotificationService struct {
	store database.NotificationStore
}

func NewNotificationService(store database.NotificationStore) *NotificationService {
	return &NotificationService{store: store}
}

func (s *NotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	return s.store.NotificationsByUser(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, userID, id string) error {
	return s.store.MarkNotificationRead(ctx, userID, id)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

func (s *NotificationService) Clear(ctx context.Context, userID string) error {
	return s.store.ClearNotifications(ctx, userID)
}

// Publish creates a notification for a user.
func (s *NotificationService) Publish(ctx context.Context, userID, title, description string, typ models.NotificationType) (*models.Notification, error) {
	notification := &models.Notification{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Type:        typ,
		CreatedAt:   time.Now(),
	}
	if err := s.store.InsertNotification(ctx, notification); err != nil {
		return nil, fmt.Errorf("publish notification: %w", err)
	}
	return notification, nil
}

// SupportRequest acknowledges a support inquiry in the user's feed.
func (s *NotificationService) SupportRequest(ctx context.Context, userID, subject string) (*models.Notification, error) {
	description := fmt.Sprintf("We received your request about %q and will get back to you within 24 hours.", subject)
	return s.Publish(ctx, userID, "Support Request Received", description, models.NotificationTypeSystem)
}
