package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"rideshare/models"
	"rideshare/services/ride"
	"rideshare/services/search"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RideHandler serves ride sharing, listing and search.
type RideHandler struct {
	Rides         ride.RideService
	SearchOptions search.Options
	Location      *time.Location
	Logger        *zap.Logger
}

func NewRideHandler(rides ride.RideService, opts search.Options, loc *time.Location, logger *zap.Logger) *RideHandler {
	if loc == nil {
		loc = time.Local
	}
	opts.Location = loc
	return &RideHandler{Rides: rides, SearchOptions: opts, Location: loc, Logger: logger}
}

type shareRideRequest struct {
	Vehicle        string `json:"vehicle"`
	Type           string `json:"type"`
	Seats          int    `json:"seats"`
	Price          int    `json:"price"`
	DepartureTime  string `json:"departureTime"`
	Pickup         string `json:"pickup"`
	Destination    string `json:"destination"`
	AdditionalInfo string `json:"additionalInfo"`
}

// parseDeparture accepts RFC 3339 or the datetime-local form a browser
// submits, read in loc.
func parseDeparture(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(utils.DateTimeLocalLayout, s, loc)
	if err != nil {
		return time.Time{}, utils.NewValidationError("departureTime must be RFC 3339 or %s", utils.DateTimeLocalLayout)
	}
	return t, nil
}

func (h *RideHandler) ShareRideHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	var req shareRideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	departure, err := parseDeparture(req.DepartureTime, h.Location)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	created, err := h.Rides.CreateRide(c.Request.Context(), identity, models.RideInput{
		Vehicle:        req.Vehicle,
		Type:           req.Type,
		Seats:          req.Seats,
		Price:          req.Price,
		DepartureTime:  departure,
		Pickup:         req.Pickup,
		Destination:    req.Destination,
		AdditionalInfo: req.AdditionalInfo,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *RideHandler) CancelRideHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	if err := h.Rides.CancelRide(c.Request.Context(), c.Param("id"), identity.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ride cancelled"})
}

func (h *RideHandler) GetRideHandler(c *gin.Context) {
	r, err := h.Rides.GetRide(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *RideHandler) ListBookableHandler(c *gin.Context) {
	rides, err := h.Rides.ListBookable(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func (h *RideHandler) ListMyRidesHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	rides, err := h.Rides.ListActiveRidesFor(c.Request.Context(), identity.Email)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rides)
}

func queryInt(c *gin.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, utils.NewValidationError("%s must be a non-negative integer", name)
	}
	return n, nil
}

// parseSearchQuery reads from, to, date, types, minPrice, maxPrice, seats
// and sort.
func (h *RideHandler) parseSearchQuery(c *gin.Context) (models.SearchQuery, error) {
	q := models.SearchQuery{
		From: c.Query("from"),
		To:   c.Query("to"),
		Sort: search.ParseSortOrder(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := time.ParseInLocation(utils.DateLayout, raw, h.Location)
		if err != nil {
			return q, utils.NewValidationError("date must be %s", utils.DateLayout)
		}
		q.Date = d
	}
	for _, v := range c.QueryArray("types") {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				q.VehicleTypes = append(q.VehicleTypes, t)
			}
		}
	}
	var err error
	if q.MinPrice, err = queryInt(c, "minPrice"); err != nil {
		return q, err
	}
	if q.MaxPrice, err = queryInt(c, "maxPrice"); err != nil {
		return q, err
	}
	if q.SeatsNeeded, err = queryInt(c, "seats"); err != nil {
		return q, err
	}
	return q, nil
}

func (h *RideHandler) SearchRidesHandler(c *gin.Context) {
	identity, ok := requireIdentity(c)
	if !ok {
		return
	}
	q, err := h.parseSearchQuery(c)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	q.Requester = identity.Email

	rides, err := h.Rides.AllRides(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	results := search.Search(rides, q, h.SearchOptions)
	getLogger(c).Debug("Ride search", zap.String("from", q.From), zap.String("to", q.To), zap.Int("results", len(results)))
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}
