package handlers

import (
	"snapbook/internal/services"
)

// Stores bundles the persistence backends the handlers run on.
type Stores struct {
	Accounts services.AccountStore
	Catalog  services.CatalogStore
	Bookings services.BookingStore
	Sessions services.SessionStore
}

type Deps struct {
	Auth    *services.AuthService
	Catalog *services.CatalogService
	Booking *services.BookingService
	Stats   *services.StatsService

	AuthHandler    *AuthHandler
	BookingHandler *BookingHandler
	AdminHandler   *AdminHandler
}

func NewDeps(st Stores, blobs services.BlobStore, notifier services.Notifier, hasher services.Hasher, cookieSecure bool) *Deps {
	authSvc := services.NewAuthService(st.Accounts, st.Sessions, hasher, notifier)
	catalogSvc := services.NewCatalogService(st.Catalog, st.Accounts, st.Sessions, blobs, hasher, notifier)
	bookingSvc := services.NewBookingService(st.Catalog, st.Bookings, notifier)
	statsSvc := services.NewStatsService(st.Catalog, st.Accounts, st.Bookings)

	return &Deps{
		Auth:    authSvc,
		Catalog: catalogSvc,
		Booking: bookingSvc,
		Stats:   statsSvc,

		AuthHandler:    &AuthHandler{Auth: authSvc, CookieSecure: cookieSecure},
		BookingHandler: &BookingHandler{Catalog: catalogSvc, Bookings: bookingSvc},
		AdminHandler:   &AdminHandler{Catalog: catalogSvc, Stats: statsSvc},
	}
}
