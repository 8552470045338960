package ride

import (
	"context"

	ledgerRepo "rideshare/database/repository/ledger"
	"rideshare/models"
	"rideshare/utils"

	"go.uber.org/zap"
)

// RideService publishes, cancels and lists rides.
type RideService interface {
	CreateRide(ctx context.Context, driver models.Identity, input models.RideInput) (*models.Ride, error)
	CancelRide(ctx context.Context, rideID, requesterEmail string) error
	GetRide(ctx context.Context, rideID string) (*models.Ride, error)
	ListActiveRidesFor(ctx context.Context, driverEmail string) ([]models.Ride, error)
	ListBookable(ctx context.Context) ([]models.Ride, error)
	AllRides(ctx context.Context) ([]models.Ride, error)
}

// DefaultRideService is the production implementation.
type DefaultRideService struct {
	Ledger ledgerRepo.LedgerRepository
	Clock  utils.Clock
	Logger *zap.Logger
}

func NewDefaultRideService(ledger ledgerRepo.LedgerRepository, clock utils.Clock, logger *zap.Logger) *DefaultRideService {
	if clock == nil {
		clock = utils.RealClock()
	}
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &DefaultRideService{Ledger: ledger, Clock: clock, Logger: logger}
}
