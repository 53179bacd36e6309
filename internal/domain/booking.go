package domain

// BookingStatus has a single value today; no transitions are implemented.
type BookingStatus string

const BookingPending BookingStatus = "Pending"

type Booking struct {
	ID             string        `db:"id"`
	CustomerID     string        `db:"customer_id"`
	PhotographerID string        `db:"photographer_id"`
	Date           string        `db:"booking_date"`
	Time           string        `db:"booking_time"`
	Location       string        `db:"location"`
	Notes          string        `db:"notes"`
	Status         BookingStatus `db:"status"`
	CreatedAt      string        `db:"created_at"`
}

// BookingView is a booking enriched for dashboards.
type BookingView struct {
	Booking
	PhotographerName string
}

// BookingFilter narrows a booking scan. Empty fields match everything.
type BookingFilter struct {
	CustomerID     string
	PhotographerID string
}

func (f BookingFilter) Match(b *Booking) bool {
	if f.CustomerID != "" && b.CustomerID != f.CustomerID {
		return false
	}
	if f.PhotographerID != "" && b.PhotographerID != f.PhotographerID {
		return false
	}
	return true
}
