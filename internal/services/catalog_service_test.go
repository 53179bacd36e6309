package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	"snapbook/internal/services"
)

func addInput() services.AddPhotographerInput {
	return services.AddPhotographerInput{
		Name:           "Dana Lee",
		Specialization: "Portrait",
		Rate:           "150",
		Contact:        "dana@example.com",
		Bio:            "Natural light.",
		Experience:     "4",
		Location:       "Austin",
		Skills:         "Portrait, Studio, ,Lighting",
		Availability:   []string{"Saturday", "Monday"},
		Username:       "dana",
		Password:       "photo123",
	}
}

func TestAddPhotographerCreatesProfileAndLogin(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	in := addInput()
	in.Image = &services.Image{Body: strings.NewReader("png"), Size: 3, ContentType: "image/png"}

	p, err := w.cat.Add(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, 150, p.Rate)
	assert.Equal(t, []string{"Saturday", "Monday"}, p.Availability)
	assert.Equal(t, []string{"Portrait", "Studio", "Lighting"}, p.Skills)
	assert.Equal(t, "/media/photographers/img.png", p.Image)
	assert.Equal(t, []string{"photographers"}, w.blobs.folders)

	sess, err := w.auth.Login(ctx, domain.RolePhotographer, "dana", "photo123")
	require.NoError(t, err)
	assert.Equal(t, p.ID, sess.PhotographerID)

	list, err := w.cat.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddPhotographerValidation(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()

	cases := map[string]func(*services.AddPhotographerInput){
		"invalid_rate":         func(in *services.AddPhotographerInput) { in.Rate = "0" },
		"invalid_experience":   func(in *services.AddPhotographerInput) { in.Experience = "-2" },
		"invalid_availability": func(in *services.AddPhotographerInput) { in.Availability = []string{"Funday"} },
		"missing_fields":       func(in *services.AddPhotographerInput) { in.Contact = "" },
		"password_short":       func(in *services.AddPhotographerInput) { in.Password = "abc" },
		"invalid_image": func(in *services.AddPhotographerInput) {
			in.Image = &services.Image{Body: strings.NewReader("x"), Size: 1, ContentType: "text/plain"}
		},
		"image_too_large": func(in *services.AddPhotographerInput) {
			in.Image = &services.Image{Body: strings.NewReader("x"), Size: services.MaxImageBytes + 1, ContentType: "image/jpeg"}
		},
	}
	for code, mutate := range cases {
		t.Run(code, func(t *testing.T) {
			in := addInput()
			mutate(&in)
			_, err := w.cat.Add(ctx, in)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
			assert.Equal(t, code, apperr.CodeOf(err))
		})
	}

	all, _ := w.catalog.Scan(ctx)
	assert.Empty(t, all)
}

func TestAddPhotographerUsernameTaken(t *testing.T) {
	w := newWorld(t)
	w.customer(t, "dana")
	_, err := w.cat.Add(context.Background(), addInput())
	assert.True(t, apperr.IsConflict(err))
}

func TestAddPhotographerUploadFailureWritesNothing(t *testing.T) {
	w := newWorld(t)
	w.blobs.err = errors.New("bucket gone")
	in := addInput()
	in.Image = &services.Image{Body: strings.NewReader("png"), Size: 3, ContentType: "image/png"}

	_, err := w.cat.Add(context.Background(), in)
	assert.True(t, apperr.IsStore(err))
	all, _ := w.catalog.Scan(context.Background())
	assert.Empty(t, all)
}

func TestAddPhotographerCompensatesFailedCredential(t *testing.T) {
	w := newWorld(t)
	w.cat.Accounts = failingAccounts{w.accounts}

	_, err := w.cat.Add(context.Background(), addInput())
	require.Error(t, err)
	all, _ := w.catalog.Scan(context.Background())
	assert.Empty(t, all)
}

func TestDeletePhotographerKeepsBookings(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	p, err := w.cat.Add(ctx, addInput())
	require.NoError(t, err)

	_, err = w.book.Create(ctx, bookingFor("alice", p.ID, "2024-06-15", "09:30"))
	require.NoError(t, err)

	require.NoError(t, w.cat.Delete(ctx, p.ID))

	list, err := w.cat.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	mine, err := w.book.ListForCustomer(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Unknown", mine[0].PhotographerName)

	_, err = w.auth.Login(ctx, domain.RolePhotographer, "dana", "photo123")
	assert.True(t, apperr.IsAuth(err))

	assert.True(t, apperr.IsNotFound(w.cat.Delete(ctx, p.ID)))
}

func TestDeletePhotographerRevokesSessions(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	p, err := w.cat.Add(ctx, addInput())
	require.NoError(t, err)
	w.customer(t, "alice")

	dana, err := w.auth.Login(ctx, domain.RolePhotographer, "dana", "photo123")
	require.NoError(t, err)
	alice, err := w.auth.Login(ctx, domain.RoleCustomer, "alice", "secret1")
	require.NoError(t, err)

	require.NoError(t, w.cat.Delete(ctx, p.ID))

	sess, err := w.auth.Current(ctx, dana.ID)
	require.NoError(t, err)
	assert.Nil(t, sess)
	sess, err = w.auth.Current(ctx, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "alice", sess.Username)
}

func TestDeletePhotographerKeepsProfileWhenCredentialRemovalFails(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	p, err := w.cat.Add(ctx, addInput())
	require.NoError(t, err)
	w.cat.Accounts = undeletableAccounts{w.accounts}

	require.Error(t, w.cat.Delete(ctx, p.ID))

	_, err = w.catalog.Get(ctx, p.ID)
	assert.NoError(t, err)
	ok, err := w.accounts.Exists(ctx, "dana")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStatsDashboard(t *testing.T) {
	w := newWorld(t)
	ctx := context.Background()
	w.photographer(t, "ph-001", "Sarah", "Friday")
	w.photographer(t, "ph-002", "Mike", "Friday")
	w.customer(t, "alice")
	w.customer(t, "bob")

	_, err := w.book.Create(ctx, bookingFor("alice", "ph-002", "2024-06-14", "10:00"))
	require.NoError(t, err)
	_, err = w.book.Create(ctx, bookingFor("bob", "ph-002", "2024-06-21", "10:00"))
	require.NoError(t, err)

	st, err := w.stats.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Photographers)
	assert.Equal(t, 2, st.Customers)
	assert.Equal(t, 2, st.Bookings)
	assert.Equal(t, 2, st.PendingBookings)
	require.Len(t, st.PerPhotographer, 2)
	assert.Equal(t, services.PhotographerCount{ID: "ph-002", Name: "Mike", Count: 2}, st.PerPhotographer[0])
	assert.Equal(t, 0, st.PerPhotographer[1].Count)
}
