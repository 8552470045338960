package ledgerRepo

import (
	"context"

	"rideshare/models"
)

// Snapshot is the full contents of the rides and bookings collections at
// one point in time.
type Snapshot struct {
	Rides    []models.Ride
	Bookings []models.Booking
}

// LedgerRepository gives consistent access to rides and bookings.
type LedgerRepository interface {
	// Snapshot loads both collections.
	Snapshot(ctx context.Context) (*Snapshot, error)
	// Update loads a fresh snapshot, passes it to fn and commits both
	// collections in one atomic write when fn returns nil. Updates are
	// serialized. Nothing is written when fn or the commit fails.
	Update(ctx context.Context, fn func(*Snapshot) error) error
}
