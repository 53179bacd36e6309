package services

import (
	"context"
	"io"

	"snapbook/internal/domain"
)

// AccountStore persists credentials keyed by username. Insert reports a
// conflict for a taken username or email; Get and Delete report not-found.
type AccountStore interface {
	Get(ctx context.Context, username string) (*domain.Account, error)
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, username string) error
	Scan(ctx context.Context, match func(*domain.Account) bool) ([]domain.Account, error)
}

// CatalogStore persists photographer profiles keyed by id.
type CatalogStore interface {
	Get(ctx context.Context, id string) (*domain.Photographer, error)
	Scan(ctx context.Context) ([]domain.Photographer, error)
	Insert(ctx context.Context, p *domain.Photographer) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// BookingStore persists bookings. Insert reports a conflict when the
// photographer already has a booking at the same date and time.
type BookingStore interface {
	Insert(ctx context.Context, b *domain.Booking) error
	Scan(ctx context.Context, f domain.BookingFilter) ([]domain.Booking, error)
}

// SessionStore holds the Session/Role Context behind the sid cookie.
type SessionStore interface {
	Put(ctx context.Context, s *domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteByUsername revokes every session of one account.
	DeleteByUsername(ctx context.Context, username string) error
}

// Notifier delivers a best-effort notification.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// BlobStore stores a binary object and returns a URL it can be fetched from.
type BlobStore interface {
	Put(ctx context.Context, r io.Reader, size int64, contentType, folder string) (string, error)
}
