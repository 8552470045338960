package handlers

import (
	"rideshare/services/session"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	Sessions session.Provider

	// User endpoints
	RegisterUserHandler     gin.HandlerFunc
	AuthenticateUserHandler gin.HandlerFunc
	LogoutHandler           gin.HandlerFunc
	GetProfileHandler       gin.HandlerFunc
	UpdateSettingsHandler   gin.HandlerFunc

	// Ride endpoints
	ListBookableHandler gin.HandlerFunc
	SearchRidesHandler  gin.HandlerFunc
	ListMyRidesHandler  gin.HandlerFunc
	ShareRideHandler    gin.HandlerFunc
	GetRideHandler      gin.HandlerFunc
	CancelRideHandler   gin.HandlerFunc

	// Booking endpoints
	BookRideHandler       gin.HandlerFunc
	RideBookingsHandler   gin.HandlerFunc
	CancelBookingHandler  gin.HandlerFunc
	BookingHistoryHandler gin.HandlerFunc

	// Notification endpoints
	ListNotificationsHandler gin.HandlerFunc
	MarkReadHandler          gin.HandlerFunc
	NotificationStream       gin.HandlerFunc

	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle wires the handler structs into a bundle.
func NewHandlerBundle(sessions session.Provider, users *UserHandler, rides *RideHandler, bookings *BookingHandler, notifications *NotificationHandler) *HandlerBundle {
	return &HandlerBundle{
		Sessions: sessions,

		RegisterUserHandler:     users.RegisterUserHandler,
		AuthenticateUserHandler: users.AuthenticateUserHandler,
		LogoutHandler:           users.LogoutHandler,
		GetProfileHandler:       users.GetProfileHandler,
		UpdateSettingsHandler:   users.UpdateSettingsHandler,

		ListBookableHandler: rides.ListBookableHandler,
		SearchRidesHandler:  rides.SearchRidesHandler,
		ListMyRidesHandler:  rides.ListMyRidesHandler,
		ShareRideHandler:    rides.ShareRideHandler,
		GetRideHandler:      rides.GetRideHandler,
		CancelRideHandler:   rides.CancelRideHandler,

		BookRideHandler:       bookings.BookRideHandler,
		RideBookingsHandler:   bookings.RideBookingsHandler,
		CancelBookingHandler:  bookings.CancelBookingHandler,
		BookingHistoryHandler: bookings.BookingHistoryHandler,

		ListNotificationsHandler: notifications.ListNotificationsHandler,
		MarkReadHandler:          notifications.MarkReadHandler,
		NotificationStream:       notifications.StreamHandler,

		HealthHandler: HealthHandler,
	}
}
