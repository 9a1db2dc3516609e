package ports

import (
	"context"

	"github.com/visago/visa-assistant/internal/core/domain"
)

// CreateNotificationInput is used by other flows to notify a user.
type CreateNotificationInput struct {
	UserID  string
	Type    domain.NotificationType
	Title   string
	Message string
}

type NotificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	Create(ctx context.Context, in CreateNotificationInput) (*domain.Notification, error)
	MarkRead(ctx context.Context, userID, id string) (*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID string) error
	Delete(ctx context.Context, userID, id string) error
}
