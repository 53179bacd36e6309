package services

import (
	"context"
	"sort"

	"snapbook/internal/domain"
)

type PhotographerCount struct {
	ID    string
	Name  string
	Count int
}

type Stats struct {
	Photographers   int
	Customers       int
	Bookings        int
	PendingBookings int
	PerPhotographer []PhotographerCount
}

// StatsService computes admin dashboard counts from full scans.
type StatsService struct {
	Catalog  CatalogStore
	Accounts AccountStore
	Bookings BookingStore
}

func NewStatsService(catalog CatalogStore, accounts AccountStore, bookings BookingStore) *StatsService {
	return &StatsService{Catalog: catalog, Accounts: accounts, Bookings: bookings}
}

func (s *StatsService) Dashboard(ctx context.Context) (Stats, error) {
	var st Stats
	photographers, err := s.Catalog.Scan(ctx)
	if err != nil {
		return st, err
	}
	customers, err := s.Accounts.Scan(ctx, func(a *domain.Account) bool { return a.Role == domain.RoleCustomer })
	if err != nil {
		return st, err
	}
	bookings, err := s.Bookings.Scan(ctx, domain.BookingFilter{})
	if err != nil {
		return st, err
	}

	st.Photographers = len(photographers)
	st.Customers = len(customers)
	st.Bookings = len(bookings)

	perID := map[string]int{}
	for _, b := range bookings {
		if b.Status == domain.BookingPending {
			st.PendingBookings++
		}
		perID[b.PhotographerID]++
	}
	for _, p := range photographers {
		st.PerPhotographer = append(st.PerPhotographer, PhotographerCount{ID: p.ID, Name: p.Name, Count: perID[p.ID]})
	}
	sort.SliceStable(st.PerPhotographer, func(i, j int) bool {
		if st.PerPhotographer[i].Count != st.PerPhotographer[j].Count {
			return st.PerPhotographer[i].Count > st.PerPhotographer[j].Count
		}
		return st.PerPhotographer[i].Name < st.PerPhotographer[j].Name
	})
	return st, nil
}
