package notification

import (
	"context"
	"fmt"

	"rideshare/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func bookingMessage(s models.BookingSummary) string {
	return fmt.Sprintf("New booking from %s (%s) for your ride from %s to %s",
		s.BookerName, s.BookerPhone, s.Pickup, s.Destination)
}

// NotifyRideOwner files a booking notification for the driver, then pushes
// it to their open sessions and the outbound channel. Only the filing can
// fail the call.
func (s *DefaultNotificationService) NotifyRideOwner(ctx context.Context, driverEmail string, summary models.BookingSummary) error {
	driver, err := s.Users.GetByEmail(ctx, driverEmail)
	if err != nil {
		s.Logger.Warn("NotifyRideOwner: driver lookup failed",
			zap.String("driver", driverEmail),
			zap.String("rideID", summary.RideID),
			zap.Error(err))
		return err
	}

	now := s.Clock.Now()
	message := bookingMessage(summary)
	n := models.Notification{
		ID:        uuid.New().String(),
		Type:      models.NotificationTypeBooking,
		RideID:    summary.RideID,
		Message:   message,
		Timestamp: now,
		IsRead:    false,
	}
	if err := s.Repo.Append(ctx, driver.Email, n); err != nil {
		return fmt.Errorf("failed to file notification: %w", err)
	}

	if s.Pusher != nil {
		if err := s.Pusher.PushNotification(driver.Email, n); err != nil {
			s.Logger.Warn("NotifyRideOwner: live push failed", zap.String("driver", driver.Email), zap.Error(err))
		}
	}
	if s.Outbox != nil {
		msg := models.OutboundMessage{
			ID:        uuid.New().String(),
			To:        driver.Mobile,
			Email:     driver.Email,
			Message:   message,
			Timestamp: now,
		}
		if err := s.Outbox.Send(ctx, msg); err != nil {
			s.Logger.Warn("NotifyRideOwner: outbound delivery failed",
				zap.String("driver", driver.Email), zap.String("to", driver.Mobile), zap.Error(err))
		}
	}

	s.Logger.Info("Ride owner notified",
		zap.String("driver", driver.Email),
		zap.String("rideID", summary.RideID),
		zap.String("bookingID", summary.BookingID))
	return nil
}

func (s *DefaultNotificationService) ListNotifications(ctx context.Context, email string) ([]models.Notification, error) {
	return s.Repo.List(ctx, email)
}

func (s *DefaultNotificationService) MarkRead(ctx context.Context, email, id string) (*models.Notification, error) {
	return s.Repo.MarkRead(ctx, email, id)
}

func (s *DefaultNotificationService) UnreadCount(ctx context.Context, email string) (int, error) {
	list, err := s.Repo.List(ctx, email)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range list {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}
