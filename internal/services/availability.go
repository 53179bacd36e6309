package services

import (
	"fmt"
	"strings"
	"time"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

// DateLayout is the only accepted booking date format.
const DateLayout = "2006-01-02"

// CheckAvailability resolves date to its weekday and admits it only when the
// photographer works that day. The rejection message lists the availability
// in stored order.
func CheckAvailability(date string, p domain.Photographer) (string, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", apperr.Validation("invalid_date", "Invalid date format. Use YYYY-MM-DD.")
	}
	day := d.Weekday().String()
	if p.AvailableOn(day) {
		return day, nil
	}
	return day, apperr.Validation("unavailable_day",
		fmt.Sprintf("Photographer is not available on %s. Available days: %s", day, p.AvailabilityText()))
}
