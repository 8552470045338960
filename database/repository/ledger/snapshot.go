package ledgerRepo

import "rideshare/models"

// RideIndex returns the position of the ride with the given id, or -1.
func (s *Snapshot) RideIndex(id string) int {
	for i := range s.Rides {
		if s.Rides[i].ID == id {
			return i
		}
	}
	return -1
}

// BookingIndex returns the position of the booking with the given id, or -1.
func (s *Snapshot) BookingIndex(id string) int {
	for i := range s.Bookings {
		if s.Bookings[i].ID == id {
			return i
		}
	}
	return -1
}

// FindRide returns a pointer into Rides, or nil.
func (s *Snapshot) FindRide(id string) *models.Ride {
	if i := s.RideIndex(id); i >= 0 {
		return &s.Rides[i]
	}
	return nil
}

// RemoveRide drops the ride at index i, keeping order.
func (s *Snapshot) RemoveRide(i int) {
	s.Rides = append(s.Rides[:i], s.Rides[i+1:]...)
}

// RemoveBooking drops the booking at index i, keeping order.
func (s *Snapshot) RemoveBooking(i int) {
	s.Bookings = append(s.Bookings[:i], s.Bookings[i+1:]...)
}

// RemoveBookingsForRide drops every booking of a ride and reports how many
// were removed.
func (s *Snapshot) RemoveBookingsForRide(rideID string) int {
	kept := s.Bookings[:0]
	removed := 0
	for _, b := range s.Bookings {
		if b.RideID == rideID {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	s.Bookings = kept
	return removed
}

// BookingsFor returns the bookings of one ride in stored order.
func (s *Snapshot) BookingsFor(rideID string) []models.Booking {
	var out []models.Booking
	for _, b := range s.Bookings {
		if b.RideID == rideID {
			out = append(out, b)
		}
	}
	return out
}
