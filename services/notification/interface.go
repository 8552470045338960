package notification

import (
	"context"

	notificationRepo "rideshare/database/repository/notification"
	userRepo "rideshare/database/repository/user"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

// NotificationService files in-app notifications and hands copies to the
// outbound channel.
type NotificationService interface {
	NotifyRideOwner(ctx context.Context, driverEmail string, summary models.BookingSummary) error
	ListNotifications(ctx context.Context, email string) ([]models.Notification, error)
	MarkRead(ctx context.Context, email, id string) (*models.Notification, error)
	UnreadCount(ctx context.Context, email string) (int, error)
}

// Outbox delivers outbound (SMS) messages.
type Outbox interface {
	Send(ctx context.Context, msg models.OutboundMessage) error
}

// Pusher delivers a notification to live sessions of its recipient.
type Pusher interface {
	PushNotification(email string, n models.Notification) error
}

// DefaultNotificationService is the production implementation.
type DefaultNotificationService struct {
	Users  userRepo.UserRepository
	Repo   notificationRepo.NotificationRepository
	Outbox Outbox
	Pusher Pusher
	Clock  utils.Clock
	Logger *zap.Logger
}

func NewDefaultNotificationService(
	users userRepo.UserRepository,
	repo notificationRepo.NotificationRepository,
	outbox Outbox,
	pusher Pusher,
	clock utils.Clock,
	logger *zap.Logger,
) *DefaultNotificationService {
	if clock == nil {
		clock = utils.RealClock()
	}
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultNotificationService{
		Users:  users,
		Repo:   repo,
		Outbox: outbox,
		Pusher: pusher,
		Clock:  clock,
		Logger: logger,
	}
}
