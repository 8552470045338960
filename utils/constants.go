// File: utils/constants.go
package utils

import "time"

// StoreTimeout bounds every single call into the persistence store.
const StoreTimeout = 5 * time.Second

// DateLayout is the calendar-day format used by search queries.
const DateLayout = "2006-01-02"

// DateTimeLocalLayout is the minute-precision layout accepted for departure
// times that carry no zone offset.
const DateTimeLocalLayout = "2006-01-02T15:04"
