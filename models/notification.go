package models

import "time"

const NotificationTypeBooking = "booking"

// Notification is an in-app message filed under a recipient email.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	RideID    string    `json:"rideId"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"isRead"`
}

// OutboundMessage is a record of the mock SMS delivery channel.
type OutboundMessage struct {
	ID        string    `json:"id"`
	To        string    `json:"to"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingSummary is what the ride owner is told about a new booking.
type BookingSummary struct {
	BookingID   string `json:"bookingId"`
	RideID      string `json:"rideId"`
	BookerName  string `json:"bookerName"`
	BookerEmail string `json:"bookerEmail"`
	BookerPhone string `json:"bookerPhone"`
	Pickup      string `json:"pickup"`
	Destination string `json:"destination"`
}
