package ride

import (
	"context"
	"strings"

	ledgerRepo "rideshare/database/repository/ledger"
	"rideshare/models"
	"rideshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func validateInput(in models.RideInput) error {
	switch {
	case in.Seats <= 0:
		return utils.NewValidationError("seats must be greater than zero")
	case in.Price < 0:
		return utils.NewValidationError("price must not be negative")
	case strings.TrimSpace(in.Pickup) == "":
		return utils.NewValidationError("pickup is required")
	case strings.TrimSpace(in.Destination) == "":
		return utils.NewValidationError("destination is required")
	case strings.TrimSpace(in.Vehicle) == "":
		return utils.NewValidationError("vehicle is required")
	case in.DepartureTime.IsZero():
		return utils.NewValidationError("departure time is required")
	}
	return nil
}

// CreateRide publishes a new ride owned by driver.
func (s *DefaultRideService) CreateRide(ctx context.Context, driver models.Identity, input models.RideInput) (*models.Ride, error) {
	if driver.Email == "" {
		return nil, utils.NewAuthorizationError("sign in to share a ride")
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	ride := models.Ride{
		ID:             uuid.New().String(),
		Driver:         driver.Name,
		DriverEmail:    driver.Email,
		Vehicle:        strings.TrimSpace(input.Vehicle),
		Type:           strings.TrimSpace(input.Type),
		Seats:          input.Seats,
		TotalSeats:     input.Seats,
		Price:          input.Price,
		DepartureTime:  input.DepartureTime,
		Pickup:         strings.TrimSpace(input.Pickup),
		Destination:    strings.TrimSpace(input.Destination),
		AdditionalInfo: input.AdditionalInfo,
		Status:         models.RideActive,
		CreatedAt:      s.Clock.Now(),
	}

	err := s.Ledger.Update(ctx, func(snap *ledgerRepo.Snapshot) error {
		snap.Rides = append(snap.Rides, ride)
		return nil
	})
	if err != nil {
		s.Logger.Error("CreateRide: commit failed", zap.Error(err))
		return nil, err
	}
	s.Logger.Info("Ride created",
		zap.String("rideID", ride.ID),
		zap.String("driver", driver.Email),
		zap.Int("seats", ride.Seats))
	return &ride, nil
}

// CancelRide removes a ride and every booking on it in one commit. Only the
// driver who shared the ride may cancel it.
func (s *DefaultRideService) CancelRide(ctx context.Context, rideID, requesterEmail string) error {
	removed := 0
	err := s.Ledger.Update(ctx, func(snap *ledgerRepo.Snapshot) error {
		idx := snap.RideIndex(rideID)
		if idx < 0 {
			return utils.NewNotFoundError("ride %s not found", rideID)
		}
		if !strings.EqualFold(snap.Rides[idx].DriverEmail, requesterEmail) {
			return utils.NewAuthorizationError("only the driver can cancel this ride")
		}
		snap.RemoveRide(idx)
		removed = snap.RemoveBookingsForRide(rideID)
		return nil
	})
	if err != nil {
		return err
	}
	s.Logger.Info("Ride cancelled",
		zap.String("rideID", rideID),
		zap.Int("bookingsRemoved", removed))
	return nil
}

func (s *DefaultRideService) GetRide(ctx context.Context, rideID string) (*models.Ride, error) {
	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	r := snap.FindRide(rideID)
	if r == nil {
		return nil, utils.NewNotFoundError("ride %s not found", rideID)
	}
	ride := *r
	return &ride, nil
}

// ListActiveRidesFor returns the driver's rides that still have seats.
func (s *DefaultRideService) ListActiveRidesFor(ctx context.Context, driverEmail string) ([]models.Ride, error) {
	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Ride{}
	for _, r := range snap.Rides {
		if strings.EqualFold(r.DriverEmail, driverEmail) && r.Status != models.RideBooked {
			out = append(out, r)
		}
	}
	return out, nil
}

// ListBookable returns every ride that is not fully booked.
func (s *DefaultRideService) ListBookable(ctx context.Context) ([]models.Ride, error) {
	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.Ride{}
	for _, r := range snap.Rides {
		if r.Status != models.RideBooked {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *DefaultRideService) AllRides(ctx context.Context) ([]models.Ride, error) {
	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if snap.Rides == nil {
		return []models.Ride{}, nil
	}
	return snap.Rides, nil
}
