package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	"snapbook/internal/metrics"
	"snapbook/internal/validate"
)

type BookingService struct {
	Catalog  CatalogStore
	Bookings BookingStore
	Notifier Notifier
	Now      func() time.Time
}

func NewBookingService(catalog CatalogStore, bookings BookingStore, n Notifier) *BookingService {
	return &BookingService{Catalog: catalog, Bookings: bookings, Notifier: n, Now: time.Now}
}

type BookingInput struct {
	CustomerID     string
	PhotographerID string
	Date           string
	Time           string
	Location       string
	Notes          string
}

// Create validates and stores a Pending booking. A missing photographer is
// reported as not-found so the caller can send the customer back to the list.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*domain.Booking, error) {
	if in.CustomerID == "" {
		return nil, apperr.Auth("no_session", "Please log in to book a photographer.")
	}
	p, err := s.Catalog.Get(ctx, in.PhotographerID)
	if err != nil {
		return nil, err
	}

	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	location := strings.TrimSpace(in.Location)
	if date == "" || clock == "" || location == "" {
		return nil, apperr.Validation("missing_fields", "Date, time, and location are required")
	}
	clock, ok := validate.Clock(clock)
	if !ok {
		return nil, apperr.Validation("invalid_time", "Invalid time format. Use HH:MM.")
	}
	if _, err := CheckAvailability(date, *p); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		ID:             uuid.NewString(),
		CustomerID:     in.CustomerID,
		PhotographerID: p.ID,
		Date:           date,
		Time:           clock,
		Location:       location,
		Notes:          strings.TrimSpace(in.Notes),
		Status:         domain.BookingPending,
		CreatedAt:      s.Now().UTC().Format(domain.TimeLayout),
	}
	if err := s.Bookings.Insert(ctx, b); err != nil {
		if apperr.IsConflict(err) {
			return nil, apperr.Conflict("slot_taken", "This photographer is already booked at that date and time.")
		}
		return nil, err
	}
	metrics.BookingCreated()
	notify(ctx, s.Notifier, "New booking",
		fmt.Sprintf("%s booked %s on %s at %s (%s)", b.CustomerID, p.Name, b.Date, b.Time, b.Location))
	return b, nil
}

// ListForCustomer returns the customer's bookings, newest first.
func (s *BookingService) ListForCustomer(ctx context.Context, customerID string) ([]domain.BookingView, error) {
	return s.list(ctx, domain.BookingFilter{CustomerID: customerID})
}

// ListForPhotographer returns only the photographer's own bookings.
func (s *BookingService) ListForPhotographer(ctx context.Context, photographerID string) ([]domain.BookingView, error) {
	if photographerID == "" {
		return nil, nil
	}
	return s.list(ctx, domain.BookingFilter{PhotographerID: photographerID})
}

func (s *BookingService) list(ctx context.Context, f domain.BookingFilter) ([]domain.BookingView, error) {
	bookings, err := s.Bookings.Scan(ctx, f)
	if err != nil {
		return nil, err
	}
	names, err := photographerNames(ctx, s.Catalog)
	if err != nil {
		return nil, err
	}
	out := make([]domain.BookingView, 0, len(bookings))
	for _, b := range bookings {
		name, ok := names[b.PhotographerID]
		if !ok {
			name = "Unknown"
		}
		out = append(out, domain.BookingView{Booking: b, PhotographerName: name})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func photographerNames(ctx context.Context, catalog CatalogStore) (map[string]string, error) {
	all, err := catalog.Scan(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(all))
	for _, p := range all {
		names[p.ID] = p.Name
	}
	return names, nil
}
