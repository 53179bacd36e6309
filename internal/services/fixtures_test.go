package services_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"snapbook/internal/domain"
	"snapbook/internal/memstore"
	"snapbook/internal/services"
)

type world struct {
	accounts *memstore.Accounts
	catalog  *memstore.Photographers
	bookings *memstore.Bookings
	sessions *memstore.Sessions
	notes    *notes
	blobs    *fakeBlobs
	hasher   services.Hasher

	auth  *services.AuthService
	book  *services.BookingService
	cat   *services.CatalogService
	stats *services.StatsService
}

type notes struct {
	mu       sync.Mutex
	subjects []string
	err      error
}

func (n *notes) Notify(_ context.Context, subject, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subjects = append(n.subjects, subject)
	return n.err
}

type fakeBlobs struct {
	err     error
	folders []string
}

func (b *fakeBlobs) Put(_ context.Context, r io.Reader, _ int64, _ string, folder string) (string, error) {
	if b.err != nil {
		return "", b.err
	}
	_, _ = io.Copy(io.Discard, r)
	b.folders = append(b.folders, folder)
	return "/media/" + folder + "/img.png", nil
}

// failingAccounts refuses every insert so compensation paths can be hit.
type failingAccounts struct {
	*memstore.Accounts
}

func (failingAccounts) Insert(context.Context, *domain.Account) error {
	return errors.New("disk full")
}

// undeletableAccounts refuses every delete.
type undeletableAccounts struct {
	*memstore.Accounts
}

func (undeletableAccounts) Delete(context.Context, string) error {
	return errors.New("disk full")
}

func newWorld(t *testing.T) *world {
	t.Helper()
	w := &world{
		accounts: memstore.NewAccounts(),
		catalog:  memstore.NewPhotographers(),
		bookings: memstore.NewBookings(),
		sessions: memstore.NewSessions(),
		notes:    &notes{},
		blobs:    &fakeBlobs{},
		hasher:   services.Hasher{Cost: 4},
	}
	w.auth = services.NewAuthService(w.accounts, w.sessions, w.hasher, w.notes)
	w.book = services.NewBookingService(w.catalog, w.bookings, w.notes)
	w.cat = services.NewCatalogService(w.catalog, w.accounts, w.sessions, w.blobs, w.hasher, w.notes)
	w.stats = services.NewStatsService(w.catalog, w.accounts, w.bookings)
	return w
}

func (w *world) photographer(t *testing.T, id, name string, days ...string) {
	t.Helper()
	require.NoError(t, w.catalog.Insert(context.Background(), &domain.Photographer{
		ID: id, Name: name, Specialization: "Wedding", Rate: 100, Availability: days,
	}))
}

func (w *world) customer(t *testing.T, username string) {
	t.Helper()
	_, err := w.auth.Register(context.Background(), services.RegisterInput{
		Username: username, Email: username + "@example.com", Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
}
