package models

import "time"

type RideStatus string

const (
	RideActive RideStatus = "active"
	RideBooked RideStatus = "booked"
)

// Ride is a driver-published offer of seats for a trip.
type Ride struct {
	ID             string     `json:"id"`
	Driver         string     `json:"driver"`
	DriverEmail    string     `json:"driverEmail"`
	Vehicle        string     `json:"vehicle"`
	Type           string     `json:"type"`
	Seats          int        `json:"seats"`      // seats still available
	TotalSeats     int        `json:"totalSeats"` // seats offered at creation
	Price          int        `json:"price"`      // per seat
	DepartureTime  time.Time  `json:"departureTime"`
	Pickup         string     `json:"pickup"`
	Destination    string     `json:"destination"`
	AdditionalInfo string     `json:"additionalInfo,omitempty"`
	Status         RideStatus `json:"status"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// RideInput holds the fields a driver supplies when sharing a ride.
type RideInput struct {
	Vehicle        string    `json:"vehicle"`
	Type           string    `json:"type"`
	Seats          int       `json:"seats"`
	Price          int       `json:"price"`
	DepartureTime  time.Time `json:"departureTime"`
	Pickup         string    `json:"pickup"`
	Destination    string    `json:"destination"`
	AdditionalInfo string    `json:"additionalInfo"`
}
