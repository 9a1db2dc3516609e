package domain

import "time"

// NotificationType classifies a notification for display.
type NotificationType string

const (
	NotificationInfo       NotificationType = "info"
	NotificationSuccess    NotificationType = "success"
	NotificationWarning    NotificationType = "warning"
	NotificationError      NotificationType = "error"
	NotificationVisaUpdate NotificationType = "visa_update"
	NotificationCommunity  NotificationType = "community"
	NotificationSystem     NotificationType = "system"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
