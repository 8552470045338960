package booking

import (
	"context"

	ledgerRepo "rideshare/database/repository/ledger"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

// Notifier tells a driver about a new booking on one of their rides.
type Notifier interface {
	NotifyRideOwner(ctx context.Context, driverEmail string, summary models.BookingSummary) error
}

// BookingService claims and releases seats.
type BookingService interface {
	BookRide(ctx context.Context, rideID string, booker models.Identity) (*models.Booking, error)
	CancelBooking(ctx context.Context, bookingID string, requester models.Identity) error
	ListBookingHistoryFor(ctx context.Context, email string) ([]models.HistoryEntry, error)
	ListBookingsForRide(ctx context.Context, rideID, requesterEmail string) ([]models.Booking, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Ledger   ledgerRepo.LedgerRepository
	Notifier Notifier
	Clock    utils.Clock
	Logger   *zap.Logger
}

func NewDefaultBookingService(ledger ledgerRepo.LedgerRepository, notifier Notifier, clock utils.Clock, logger *zap.Logger) *DefaultBookingService {
	if clock == nil {
		clock = utils.RealClock()
	}
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultBookingService{Ledger: ledger, Notifier: notifier, Clock: clock, Logger: logger}
}
