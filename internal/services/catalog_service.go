package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	applog "snapbook/internal/log"
	"snapbook/internal/validate"
)

// MaxImageBytes caps photographer portrait uploads.
const MaxImageBytes = 5 << 20

type CatalogService struct {
	Catalog  CatalogStore
	Accounts AccountStore
	Sessions SessionStore
	Blobs    BlobStore
	Hasher   Hasher
	Notifier Notifier
	Now      func() time.Time
}

func NewCatalogService(catalog CatalogStore, accounts AccountStore, sessions SessionStore, blobs BlobStore, hasher Hasher, n Notifier) *CatalogService {
	return &CatalogService{Catalog: catalog, Accounts: accounts, Sessions: sessions, Blobs: blobs, Hasher: hasher, Notifier: n, Now: time.Now}
}

// List returns every profile ordered by name.
func (s *CatalogService) List(ctx context.Context) ([]domain.Photographer, error) {
	all, err := s.Catalog.Scan(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return all, nil
}

func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Photographer, error) {
	return s.Catalog.Get(ctx, id)
}

type Image struct {
	Body        io.Reader
	Size        int64
	ContentType string
}

type AddPhotographerInput struct {
	Name           string
	Specialization string
	Rate           string
	Contact        string
	Bio            string
	Experience     string
	Location       string
	Skills         string
	Availability   []string
	ImageURL       string
	Image          *Image

	Username string
	Password string
}

// Add validates the form, uploads the portrait, then writes the profile and
// its login credential. A failed credential write removes the profile again.
func (s *CatalogService) Add(ctx context.Context, in AddPhotographerInput) (*domain.Photographer, error) {
	name, okName := validate.Name(in.Name)
	spec, okSpec := validate.Name(in.Specialization)
	contact := strings.TrimSpace(in.Contact)
	location := strings.TrimSpace(in.Location)
	username := strings.TrimSpace(in.Username)
	if !okName || !okSpec || contact == "" || location == "" || username == "" || in.Password == "" {
		return nil, apperr.Validation("missing_fields", "Name, specialization, contact, location, username and password are required")
	}
	rate, ok := validate.Rate(in.Rate)
	if !ok {
		return nil, apperr.Validation("invalid_rate", "Rate must be a positive whole number")
	}
	experience, ok := validate.Experience(in.Experience)
	if !ok {
		return nil, apperr.Validation("invalid_experience", "Experience must be a non-negative whole number of years")
	}
	days, ok := validate.Weekdays(in.Availability)
	if !ok {
		return nil, apperr.Validation("invalid_availability", "Availability must only contain weekday names")
	}
	if _, ok := validate.Username(username); !ok {
		return nil, apperr.Validation("invalid_username", "Username must be 3-32 letters, digits, dots, dashes or underscores")
	}
	if !validate.Password(in.Password) {
		return nil, apperr.Validation("password_short", fmt.Sprintf("Password must be at least %d characters", validate.MinPasswordLen))
	}
	taken, err := s.Accounts.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("username_taken", "Username already exists")
	}

	image := strings.TrimSpace(in.ImageURL)
	if in.Image != nil && in.Image.Size > 0 {
		if _, ok := validate.ImageType(in.Image.ContentType); !ok {
			return nil, apperr.Validation("invalid_image", "Image must be a JPEG, PNG or WebP file")
		}
		if in.Image.Size > MaxImageBytes {
			return nil, apperr.Validation("image_too_large", "Image must be 5 MB or smaller")
		}
		url, err := s.Blobs.Put(ctx, in.Image.Body, in.Image.Size, in.Image.ContentType, "photographers")
		if err != nil {
			return nil, apperr.Store("image_upload", err)
		}
		image = url
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Store("password_hash", err)
	}
	now := s.Now().UTC().Format(domain.TimeLayout)
	p := &domain.Photographer{
		ID:             uuid.NewString(),
		Name:           name,
		Specialization: spec,
		Rate:           rate,
		Contact:        contact,
		Bio:            strings.TrimSpace(in.Bio),
		Image:          image,
		Experience:     experience,
		Location:       location,
		Skills:         validate.Tags(in.Skills),
		Availability:   days,
		CreatedAt:      now,
	}
	if err := s.Catalog.Insert(ctx, p); err != nil {
		return nil, err
	}
	acc := &domain.Account{
		Username:       username,
		Hash:           hash,
		Role:           domain.RolePhotographer,
		PhotographerID: p.ID,
		CreatedAt:      now,
	}
	if err := s.Accounts.Insert(ctx, acc); err != nil {
		if derr := s.Catalog.Delete(ctx, p.ID); derr != nil {
			applog.Logger().WithError(derr).WithField("photographer", p.ID).Error("catalog.add.compensate.fail")
		}
		return nil, err
	}
	notify(ctx, s.Notifier, "New photographer", fmt.Sprintf("%s (%s) joined the roster", p.Name, p.Specialization))
	return p, nil
}

// Delete removes a profile's logins and their open sessions, then the profile
// itself. Bookings are left untouched.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	p, err := s.Catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	creds, err := s.Accounts.Scan(ctx, func(a *domain.Account) bool {
		return a.Role == domain.RolePhotographer && a.PhotographerID == id
	})
	if err != nil {
		return err
	}
	for _, a := range creds {
		if err := s.Sessions.DeleteByUsername(ctx, a.Username); err != nil {
			return err
		}
		if err := s.Accounts.Delete(ctx, a.Username); err != nil && !apperr.IsNotFound(err) {
			return err
		}
	}
	if err := s.Catalog.Delete(ctx, id); err != nil {
		return err
	}
	notify(ctx, s.Notifier, "Photographer removed", fmt.Sprintf("%s was removed from the roster", p.Name))
	return nil
}
