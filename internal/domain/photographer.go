package domain

import "strings"

// Weekdays in calendar order, as stored in availability sets.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// IsWeekday reports whether s is one of the seven English weekday names.
func IsWeekday(s string) bool {
	for _, d := range Weekdays {
		if d == s {
			return true
		}
	}
	return false
}

type Photographer struct {
	ID             string   `db:"id"`
	Name           string   `db:"name"`
	Specialization string   `db:"specialization"`
	Rate           int      `db:"rate"`
	Contact        string   `db:"contact"`
	Bio            string   `db:"bio"`
	Image          string   `db:"image"`
	Experience     int      `db:"experience"`
	Location       string   `db:"location"`
	Skills         []string `db:"-"`
	Availability   []string `db:"-"`
	CreatedAt      string   `db:"created_at"`
}

// AvailableOn reports whether the weekday name is in the availability set.
func (p Photographer) AvailableOn(day string) bool {
	for _, d := range p.Availability {
		if d == day {
			return true
		}
	}
	return false
}

// AvailabilityText joins the availability set in stored order.
func (p Photographer) AvailabilityText() string {
	return strings.Join(p.Availability, ", ")
}
