package utils

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// RentalDurationDays is the fixed rental term. Every rental runs for two
// calendar days regardless of product.
const RentalDurationDays = 2

var (
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
	ErrPastDate    = errors.New("start date cannot be in the past")
)

// ReturnDate computes the rental return date for a given start date.
func ReturnDate(start time.Time) time.Time {
	return start.AddDate(0, 0, RentalDurationDays)
}

// ParseStartDate parses a rental start date and rejects dates earlier than
// today in the given location.
func ParseStartDate(value string, now time.Time) (time.Time, error) {
	start, err := time.ParseInLocation(DateLayout, value, now.Location())
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if start.Before(today) {
		return time.Time{}, ErrPastDate
	}
	return start, nil
}
