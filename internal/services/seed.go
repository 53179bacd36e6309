package services

import (
	"context"
	"strings"
	"time"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	applog "snapbook/internal/log"
)

// SeedOptions controls the accounts created on start-up.
type SeedOptions struct {
	AdminUsername        string
	AdminPassword        string
	PhotographerPassword string
}

// DefaultPhotographers is the launch roster inserted into an empty catalog.
var DefaultPhotographers = []domain.Photographer{
	{ID: "ph-001", Name: "John Smith", Specialization: "Wedding Photography", Rate: 10000, Contact: "john@photographer.com",
		Bio:        "Experienced wedding photographer with passion for capturing emotional moments",
		Image:      "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop",
		Experience: 12, Location: "Mumbai",
		Skills:       []string{"Wedding Ceremonies", "Reception Events", "Prenup Shoots", "Same-Day Edits"},
		Availability: []string{"Monday", "Friday", "Saturday", "Sunday"}},
	{ID: "ph-002", Name: "Sarah Johnson", Specialization: "Portrait Photography", Rate: 8000, Contact: "sarah@photographer.com",
		Bio:        "Professional portrait photographer specializing in headshots and personal branding",
		Image:      "https://images.unsplash.com/photo-1602233158242-3ba0ac4d2167?w=400&h=400&fit=crop",
		Experience: 8, Location: "Bangalore",
		Skills:       []string{"Headshots", "Personal Branding", "Studio Portraits", "Natural Light"},
		Availability: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}},
	{ID: "ph-003", Name: "Mike Davis", Specialization: "Event Photography", Rate: 15000, Contact: "mike@photographer.com",
		Bio:        "Dynamic event photographer capturing energy and moments at corporate and private events",
		Image:      "https://images.unsplash.com/photo-1500648767791-00dcc994a43e?w=400&h=400&fit=crop",
		Experience: 10, Location: "Delhi",
		Skills:       []string{"Corporate Events", "Product Launches", "Conferences", "Live Coverage"},
		Availability: []string{"Thursday", "Friday", "Saturday", "Sunday"}},
	{ID: "ph-004", Name: "Emily Rodriguez", Specialization: "Family Photography", Rate: 9000, Contact: "emily@photographer.com",
		Bio:        "Specializing in capturing beautiful family moments and creating lasting memories",
		Image:      "https://images.unsplash.com/photo-1438761681033-6461ffad8d80?w=400&h=400&fit=crop",
		Experience: 9, Location: "Pune",
		Skills:       []string{"Family Portraits", "Maternity", "Newborn", "Children Photography"},
		Availability: []string{"Monday", "Tuesday", "Wednesday", "Saturday", "Sunday"}},
	{ID: "ph-005", Name: "David Chen", Specialization: "Corporate Photography", Rate: 14000, Contact: "david@photographer.com",
		Bio:        "Expert in corporate events, executive headshots, and business photography",
		Image:      "https://images.unsplash.com/photo-1615109398623-88346a601842?w=400&h=400&fit=crop",
		Experience: 11, Location: "Hyderabad",
		Skills:       []string{"Executive Headshots", "Corporate Events", "Office Shoots", "Annual Reports"},
		Availability: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}},
	{ID: "ph-006", Name: "Jessica Williams", Specialization: "Fashion Photography", Rate: 20000, Contact: "jessica@photographer.com",
		Bio:        "Professional fashion photographer with experience in editorial and commercial work",
		Image:      "https://images.unsplash.com/photo-1494790108377-be9c29b29330?w=400&h=400&fit=crop",
		Experience: 13, Location: "Mumbai",
		Skills:       []string{"Fashion Shoots", "Editorial", "Lookbooks", "Product Photography"},
		Availability: []string{"Wednesday", "Thursday", "Friday", "Saturday"}},
	{ID: "ph-007", Name: "Robert Thompson", Specialization: "Real Estate Photography", Rate: 10000, Contact: "robert@photographer.com",
		Bio:        "Specializing in property photography, drone shots, and virtual tours",
		Image:      "https://plus.unsplash.com/premium_photo-1689977927774-401b12d137d6?w=400&h=400&fit=crop",
		Experience: 7, Location: "Gurgaon",
		Skills:       []string{"Property Shoots", "Aerial Photography", "Virtual Tours", "3D Visualization"},
		Availability: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}},
	{ID: "ph-008", Name: "Amanda Foster", Specialization: "Nature & Landscape Photography", Rate: 9000, Contact: "amanda@photographer.com",
		Bio:        "Capturing stunning landscapes and wildlife in their natural habitat",
		Image:      "https://images.unsplash.com/photo-1544005313-94ddf0286df2?w=400&h=400&fit=crop",
		Experience: 6, Location: "Shimla",
		Skills:       []string{"Landscape", "Wildlife", "Adventure Photography", "Travel Photography"},
		Availability: []string{"Thursday", "Friday", "Saturday", "Sunday"}},
	{ID: "ph-009", Name: "Chris Martinez", Specialization: "Sports Photography", Rate: 13000, Contact: "chris@photographer.com",
		Bio:        "Dynamic sports photographer covering all types of athletic events",
		Image:      "https://images.unsplash.com/photo-1506794778202-cad84cf45f1d?w=400&h=400&fit=crop",
		Experience: 9, Location: "Bangalore",
		Skills:       []string{"Sports Events", "Action Photography", "Coaching Sessions", "Tournaments"},
		Availability: []string{"Saturday", "Sunday"}},
	{ID: "ph-010", Name: "Lauren Mitchell", Specialization: "Baby & Newborn Photography", Rate: 11000, Contact: "lauren@photographer.com",
		Bio:        "Gentle and creative approach to capturing precious baby moments",
		Image:      "https://plus.unsplash.com/premium_photo-1670282393309-70fd7f8eb1ef?w=400&h=400&fit=crop",
		Experience: 8, Location: "Chennai",
		Skills:       []string{"Newborn", "Baby Portraits", "Milestone Sessions", "Maternity"},
		Availability: []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Saturday"}},
}

// SeedUsername is the login a seeded photographer gets: the local part of
// their contact address.
func SeedUsername(p domain.Photographer) string {
	local, _, _ := strings.Cut(p.Contact, "@")
	return local
}

// Seed fills an empty catalog with DefaultPhotographers and makes sure the
// admin and every seeded photographer can log in. Safe to run on every start.
func Seed(ctx context.Context, catalog CatalogStore, accounts AccountStore, hasher Hasher, opts SeedOptions) error {
	now := time.Now().UTC().Format(domain.TimeLayout)

	n, err := catalog.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		applog.Logger().WithField("count", len(DefaultPhotographers)).Info("seed.photographers")
		for _, p := range DefaultPhotographers {
			p.CreatedAt = now
			if err := catalog.Insert(ctx, &p); err != nil && !apperr.IsConflict(err) {
				return err
			}
		}
	}

	if err := ensureAccount(ctx, accounts, hasher, domain.Account{
		Username: opts.AdminUsername, Role: domain.RoleAdmin, CreatedAt: now,
	}, opts.AdminPassword); err != nil {
		return err
	}
	for _, p := range DefaultPhotographers {
		if _, err := catalog.Get(ctx, p.ID); err != nil {
			if apperr.IsNotFound(err) {
				continue
			}
			return err
		}
		if err := ensureAccount(ctx, accounts, hasher, domain.Account{
			Username: SeedUsername(p), Role: domain.RolePhotographer, PhotographerID: p.ID, CreatedAt: now,
		}, opts.PhotographerPassword); err != nil {
			return err
		}
	}
	return nil
}

func ensureAccount(ctx context.Context, accounts AccountStore, hasher Hasher, a domain.Account, password string) error {
	if a.Username == "" || password == "" {
		return nil
	}
	ok, err := accounts.Exists(ctx, a.Username)
	if err != nil || ok {
		return err
	}
	if a.Hash, err = hasher.Hash(password); err != nil {
		return err
	}
	if err := accounts.Insert(ctx, &a); err != nil && !apperr.IsConflict(err) {
		return err
	}
	applog.Logger().WithField("username", a.Username).WithField("role", a.Role).Info("seed.account")
	return nil
}
