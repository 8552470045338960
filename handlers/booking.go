package handlers

import (
	"net/http"

	"rideshare/services/booking"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves seat booking and booking history.
type BookingHandler struct {
	Bookings booking.BookingService
	Logger   *zap.Logger
}

func NewBookingHandler(bookings booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Logger: logger}
}

func (h *BookingHandler) BookRideHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	b, err := h.Bookings.BookRide(c.Request.Context(), c.Param("id"), identity)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BookingHandler) CancelBookingHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	if err := h.Bookings.CancelBooking(c.Request.Context(), c.Param("id"), identity); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}

func (h *BookingHandler) BookingHistoryHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	history, err := h.Bookings.ListBookingHistoryFor(c.Request.Context(), identity.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *BookingHandler) RideBookingsHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	list, err := h.Bookings.ListBookingsForRide(c.Request.Context(), c.Param("id"), identity.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
