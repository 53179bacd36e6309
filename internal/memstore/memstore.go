// Package memstore keeps accounts, profiles, bookings and sessions in
// process memory. It backs STORE_DRIVER=memory and the service tests.
package memstore

import (
	"context"
	"strings"
	"sync"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
)

type Accounts struct {
	mu   sync.RWMutex
	rows map[string]domain.Account
}

func NewAccounts() *Accounts { return &Accounts{rows: map[string]domain.Account{}} }

func (s *Accounts) Get(_ context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.rows[username]
	if !ok {
		return nil, apperr.NotFound("account")
	}
	return &a, nil
}

func (s *Accounts) Exists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rows[username]
	return ok, nil
}

func (s *Accounts) Insert(_ context.Context, a *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[a.Username]; ok {
		return apperr.Conflict("username_taken", "Username already exists")
	}
	if a.Email != "" {
		for _, r := range s.rows {
			if strings.EqualFold(r.Email, a.Email) {
				return apperr.Conflict("email_taken", "Email already registered")
			}
		}
	}
	s.rows[a.Username] = *a
	return nil
}

func (s *Accounts) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[username]; !ok {
		return apperr.NotFound("account")
	}
	delete(s.rows, username)
	return nil
}

func (s *Accounts) Scan(_ context.Context, match func(*domain.Account) bool) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Account
	for _, a := range s.rows {
		if match == nil || match(&a) {
			out = append(out, a)
		}
	}
	return out, nil
}

type Photographers struct {
	mu   sync.RWMutex
	rows map[string]domain.Photographer
}

func NewPhotographers() *Photographers { return &Photographers{rows: map[string]domain.Photographer{}} }

func clonePhotographer(p domain.Photographer) domain.Photographer {
	p.Skills = append([]string(nil), p.Skills...)
	p.Availability = append([]string(nil), p.Availability...)
	return p
}

func (s *Photographers) Get(_ context.Context, id string) (*domain.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("photographer")
	}
	p = clonePhotographer(p)
	return &p, nil
}

func (s *Photographers) Scan(_ context.Context) ([]domain.Photographer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Photographer, 0, len(s.rows))
	for _, p := range s.rows {
		out = append(out, clonePhotographer(p))
	}
	return out, nil
}

func (s *Photographers) Insert(_ context.Context, p *domain.Photographer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[p.ID]; ok {
		return apperr.Conflict("photographer_exists", "Photographer already exists")
	}
	s.rows[p.ID] = clonePhotographer(*p)
	return nil
}

func (s *Photographers) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperr.NotFound("photographer")
	}
	delete(s.rows, id)
	return nil
}

func (s *Photographers) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows), nil
}

type Bookings struct {
	mu   sync.RWMutex
	rows []domain.Booking
}

func NewBookings() *Bookings { return &Bookings{} }

func (s *Bookings) Insert(_ context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.PhotographerID == b.PhotographerID && r.Date == b.Date && r.Time == b.Time {
			return apperr.Conflict("slot_taken", "This photographer is already booked at that date and time.")
		}
	}
	s.rows = append(s.rows, *b)
	return nil
}

func (s *Bookings) Scan(_ context.Context, f domain.BookingFilter) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for i := range s.rows {
		if f.Match(&s.rows[i]) {
			out = append(out, s.rows[i])
		}
	}
	return out, nil
}

type Sessions struct {
	mu   sync.RWMutex
	rows map[string]domain.Session
}

func NewSessions() *Sessions { return &Sessions{rows: map[string]domain.Session{}} }

func (s *Sessions) Put(_ context.Context, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows[sess.ID] = *sess
	return nil
}

func (s *Sessions) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.rows[id]
	if !ok {
		return nil, apperr.NotFound("session")
	}
	return &sess, nil
}

func (s *Sessions) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return apperr.NotFound("session")
	}
	delete(s.rows, id)
	return nil
}

func (s *Sessions) DeleteByUsername(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sess := range s.rows {
		if sess.Username == username {
			delete(s.rows, id)
		}
	}
	return nil
}
