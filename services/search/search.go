// Package search filters and orders a snapshot of rides for a rider's query.
// It never touches the store.
package search

import (
	"sort"
	"strings"
	"time"

	"rideshare/config"
	"rideshare/models"
)

// Options switches the optional gates of the filter chain on or off.
type Options struct {
	SeatFilter        bool
	PriceFilter       bool
	VehicleTypeFilter bool
	ExcludeOwnRides   bool

	// Location decides which calendar day a departure falls on.
	// Nil means time.Local.
	Location *time.Location
}

// DefaultOptions enables every gate.
func DefaultOptions() Options {
	return Options{
		SeatFilter:        true,
		PriceFilter:       true,
		VehicleTypeFilter: true,
		ExcludeOwnRides:   true,
	}
}

// OptionsFromConfig reads the SEARCH_* toggles from the loaded config.
func OptionsFromConfig(loc *time.Location) Options {
	return Options{
		SeatFilter:        config.AppConfig.SearchSeatFilter,
		PriceFilter:       config.AppConfig.SearchPriceFilter,
		VehicleTypeFilter: config.AppConfig.SearchVehicleTypeFilter,
		ExcludeOwnRides:   config.AppConfig.SearchExcludeOwnRides,
		Location:          loc,
	}
}

// Search returns the rides matching q, ordered by q.Sort. The input slice is
// not modified.
func Search(rides []models.Ride, q models.SearchQuery, opts Options) []models.Ride {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	seats := q.SeatsNeeded
	if seats < 1 {
		seats = 1
	}
	allowedTypes := make(map[string]bool, len(q.VehicleTypes))
	for _, t := range q.VehicleTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			allowedTypes[t] = true
		}
	}
	from := strings.ToLower(strings.TrimSpace(q.From))
	to := strings.ToLower(strings.TrimSpace(q.To))

	out := make([]models.Ride, 0, len(rides))
	for _, r := range rides {
		if r.Status == models.RideBooked {
			continue
		}
		if opts.SeatFilter && r.Seats < seats {
			continue
		}
		if opts.PriceFilter {
			if r.Price < q.MinPrice {
				continue
			}
			if q.MaxPrice > 0 && r.Price > q.MaxPrice {
				continue
			}
		}
		if opts.VehicleTypeFilter && len(allowedTypes) > 0 && !allowedTypes[strings.ToLower(r.Type)] {
			continue
		}
		if opts.ExcludeOwnRides && q.Requester != "" && strings.EqualFold(r.DriverEmail, q.Requester) {
			continue
		}
		if from != "" && !strings.Contains(strings.ToLower(r.Pickup), from) {
			continue
		}
		if to != "" && !strings.Contains(strings.ToLower(r.Destination), to) {
			continue
		}
		if !q.Date.IsZero() && !sameDay(r.DepartureTime, q.Date, loc) {
			continue
		}
		out = append(out, r)
	}

	sortRides(out, q.Sort)
	return out
}

func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

func sortRides(rides []models.Ride, order models.SortOrder) {
	var less func(a, b models.Ride) bool
	switch order {
	case models.SortPriceAsc:
		less = func(a, b models.Ride) bool { return a.Price < b.Price }
	case models.SortPriceDesc:
		less = func(a, b models.Ride) bool { return a.Price > b.Price }
	case models.SortTimeAsc:
		less = func(a, b models.Ride) bool { return a.DepartureTime.Before(b.DepartureTime) }
	case models.SortTimeDesc:
		less = func(a, b models.Ride) bool { return a.DepartureTime.After(b.DepartureTime) }
	default:
		return
	}
	sort.SliceStable(rides, func(i, j int) bool { return less(rides[i], rides[j]) })
}

// ParseSortOrder accepts the sort keys used by the API; anything else keeps
// the stored order.
func ParseSortOrder(s string) models.SortOrder {
	switch o := models.SortOrder(strings.ToLower(strings.TrimSpace(s))); o {
	case models.SortPriceAsc, models.SortPriceDesc, models.SortTimeAsc, models.SortTimeDesc:
		return o
	default:
		return models.SortNone
	}
}
