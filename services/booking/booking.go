package booking

import (
	"context"
	"strings"

	ledgerRepo "rideshare/database/repository/ledger"
	"rideshare/models"
	"rideshare/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookRide claims one seat on a ride. The booking is committed before the
// driver is notified; a failed notification leaves the booking in place.
func (s *DefaultBookingService) BookRide(ctx context.Context, rideID string, booker models.Identity) (*models.Booking, error) {
	if booker.Email == "" {
		return nil, utils.NewAuthorizationError("sign in to book a ride")
	}

	var (
		booking models.Booking
		ride    models.Ride
	)
	err := s.Ledger.Update(ctx, func(snap *ledgerRepo.Snapshot) error {
		r := snap.FindRide(rideID)
		if r == nil {
			return utils.NewNotFoundError("ride %s not found", rideID)
		}
		if r.Seats <= 0 {
			return utils.NewSoldOutError("no seats left on ride %s", rideID)
		}

		r.Seats--
		if r.Seats == 0 {
			r.Status = models.RideBooked
		}
		booking = models.Booking{
			ID:         uuid.New().String(),
			RideID:     r.ID,
			UserID:     booker.Email,
			UserName:   booker.Name,
			UserMobile: booker.Mobile,
			Status:     models.BookingConfirmed,
			BookedAt:   s.Clock.Now(),
			RideDetails: models.RideSnapshot{
				Pickup:        r.Pickup,
				Destination:   r.Destination,
				DepartureTime: r.DepartureTime,
				Vehicle:       r.Vehicle,
				Type:          r.Type,
				Price:         r.Price,
			},
		}
		snap.Bookings = append(snap.Bookings, booking)
		ride = *r
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.Logger.Info("Ride booked",
		zap.String("bookingID", booking.ID),
		zap.String("rideID", ride.ID),
		zap.String("booker", booker.Email),
		zap.Int("seatsLeft", ride.Seats))

	if s.Notifier != nil {
		summary := models.BookingSummary{
			BookingID:   booking.ID,
			RideID:      ride.ID,
			BookerName:  booker.Name,
			BookerEmail: booker.Email,
			BookerPhone: booker.Mobile,
			Pickup:      ride.Pickup,
			Destination: ride.Destination,
		}
		if err := s.Notifier.NotifyRideOwner(ctx, ride.DriverEmail, summary); err != nil {
			s.Logger.Warn("BookRide: failed to notify ride owner",
				zap.String("bookingID", booking.ID),
				zap.String("driver", ride.DriverEmail),
				zap.Error(err))
		}
	}
	return &booking, nil
}

// CancelBooking removes a booking and returns its seat to the ride. A ride
// that was fully booked becomes active again.
func (s *DefaultBookingService) CancelBooking(ctx context.Context, bookingID string, requester models.Identity) error {
	var rideID string
	err := s.Ledger.Update(ctx, func(snap *ledgerRepo.Snapshot) error {
		idx := snap.BookingIndex(bookingID)
		if idx < 0 {
			return utils.NewNotFoundError("booking %s not found", bookingID)
		}
		b := snap.Bookings[idx]
		if !strings.EqualFold(b.UserID, requester.Email) {
			return utils.NewAuthorizationError("only the rider who booked can cancel this booking")
		}
		rideID = b.RideID
		snap.RemoveBooking(idx)

		if r := snap.FindRide(b.RideID); r != nil {
			r.Seats++
			if r.Status == models.RideBooked {
				r.Status = models.RideActive
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.Logger.Info("Booking cancelled", zap.String("bookingID", bookingID), zap.String("rideID", rideID))
	return nil
}

// ListBookingHistoryFor returns the user's bookings joined with the current
// state of each ride.
func (s *DefaultBookingService) ListBookingHistoryFor(ctx context.Context, email string) ([]models.HistoryEntry, error) {
	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []models.HistoryEntry{}
	for _, b := range snap.Bookings {
		if !strings.EqualFold(b.UserID, email) {
			continue
		}
		entry := models.HistoryEntry{Booking: b}
		if r := snap.FindRide(b.RideID); r != nil {
			ride := *r
			entry.Ride = &ride
		}
		out = append(out, entry)
	}
	return out, nil
}

// ListBookingsForRide shows a driver who booked their ride.
func (s *DefaultBookingService) ListBookingsForRide(ctx context.Context, rideID, requesterEmail string) ([]models.Booking, error) {
	snap, err := s.Ledger.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	r := snap.FindRide(rideID)
	if r == nil {
		return nil, utils.NewNotFoundError("ride %s not found", rideID)
	}
	if !strings.EqualFold(r.DriverEmail, requesterEmail) {
		return nil, utils.NewAuthorizationError("only the driver can see who booked this ride")
	}
	out := snap.BookingsFor(rideID)
	if out == nil {
		out = []models.Booking{}
	}
	return out, nil
}
