package models

import "time"

type SortOrder string

const (
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
	SortTimeAsc   SortOrder = "time-asc"
	SortTimeDesc  SortOrder = "time-desc"
)

// SearchQuery describes what a rider is looking for. Zero values disable
// the matching clause, except SeatsNeeded which is at least one.
type SearchQuery struct {
	From         string    `json:"from"`
	To           string    `json:"to"`
	Date         time.Time `json:"date"`
	VehicleTypes []string  `json:"vehicleTypes,omitempty"`
	MinPrice     int       `json:"minPrice"`
	MaxPrice     int       `json:"maxPrice"` // 0 means no upper bound
	SeatsNeeded  int       `json:"seats"`
	Requester    string    `json:"-"`
	Sort         SortOrder `json:"sort"`
}
