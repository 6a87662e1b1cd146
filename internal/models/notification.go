package models

import "time"

type NotificationType string

const (
	NotificationTypeOrder     NotificationType = "order"
	NotificationTypeCancelled NotificationType = "cancelled"
	NotificationTypePromotion NotificationType = "promotion"
	NotificationTypeSystem    NotificationType = "system"
)

// Notification is a per-user message. Only the read flag is ever mutated;
// the lifecycle ends on an explicit clear.
type Notification struct {
	ID          string           `json:"id"`
	UserID      string           `json:"user_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Type        NotificationType `json:"type"`
	Read        bool             `json:"read"`
	CreatedAt   time.Time        `json:"created_at"`
}

type SupportRequest struct {
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
