package notificationRepo

import (
	"context"

	"rideshare/models"
)

// NotificationRepository stores in-app notifications per recipient email
// and the outbound message log.
type NotificationRepository interface {
	Append(ctx context.Context, email string, n models.Notification) error
	List(ctx context.Context, email string) ([]models.Notification, error)
	// MarkRead sets the read flag; a NotFound error for an unknown id.
	MarkRead(ctx context.Context, email, id string) (*models.Notification, error)
	AppendOutbound(ctx context.Context, msg models.OutboundMessage) error
	ListOutbound(ctx context.Context) ([]models.OutboundMessage, error)
}
