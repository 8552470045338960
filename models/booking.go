package models

import "time"

type BookingStatus string

const BookingConfirmed BookingStatus = "confirmed"

// RideSnapshot is the copy of ride display fields taken at booking time.
type RideSnapshot struct {
	Pickup        string    `json:"pickup"`
	Destination   string    `json:"destination"`
	DepartureTime time.Time `json:"departureTime"`
	Vehicle       string    `json:"vehicle"`
	Type          string    `json:"type"`
	Price         int       `json:"price"`
}

// Booking represents a rider's claim on one seat of a ride.
type Booking struct {
	ID          string        `json:"id"`
	RideID      string        `json:"rideId"`
	UserID      string        `json:"userId"` // booker email
	UserName    string        `json:"userName"`
	UserMobile  string        `json:"userMobile"`
	Status      BookingStatus `json:"status"`
	BookedAt    time.Time     `json:"bookedAt"`
	RideDetails RideSnapshot  `json:"rideDetails"`
}

// HistoryEntry joins a booking with the current state of its ride.
// Ride is nil when the ride no longer exists.
type HistoryEntry struct {
	Ride    *Ride   `json:"ride,omitempty"`
	Booking Booking `json:"booking"`
}
