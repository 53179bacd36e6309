package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"snapbook/internal/apperr"
	"snapbook/internal/domain"
	applog "snapbook/internal/log"
	"snapbook/internal/validate"
)

var errBadCreds = apperr.Auth("bad_credentials", "Invalid username or password")

type AuthService struct {
	Accounts AccountStore
	Sessions SessionStore
	Hasher   Hasher
	Notifier Notifier
	Now      func() time.Time
}

func NewAuthService(accounts AccountStore, sessions SessionStore, hasher Hasher, n Notifier) *AuthService {
	return &AuthService{Accounts: accounts, Sessions: sessions, Hasher: hasher, Notifier: n, Now: time.Now}
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

// Register creates a customer account. Checks run in a fixed order so the
// first failing rule is the one reported.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.Account, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.TrimSpace(in.Email)
	if username == "" || email == "" || in.Password == "" || in.Confirm == "" {
		return nil, apperr.Validation("missing_fields", "All fields are required")
	}
	if _, ok := validate.Username(username); !ok {
		return nil, apperr.Validation("invalid_username", "Username must be 3-32 letters, digits, dots, dashes or underscores")
	}
	taken, err := s.Accounts.Exists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Conflict("username_taken", "Username already exists")
	}
	same, err := s.Accounts.Scan(ctx, func(a *domain.Account) bool {
		return a.Email != "" && strings.EqualFold(a.Email, email)
	})
	if err != nil {
		return nil, err
	}
	if len(same) > 0 {
		return nil, apperr.Conflict("email_taken", "Email already registered")
	}
	if in.Password != in.Confirm {
		return nil, apperr.Validation("password_mismatch", "Passwords do not match")
	}
	if !validate.Password(in.Password) {
		return nil, apperr.Validation("password_short", fmt.Sprintf("Password must be at least %d characters", validate.MinPasswordLen))
	}
	if _, ok := validate.Email(email); !ok {
		return nil, apperr.Validation("invalid_email", "Enter a valid email address")
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, apperr.Store("password_hash", err)
	}
	acc := &domain.Account{
		Username:  username,
		Email:     email,
		Hash:      hash,
		Role:      domain.RoleCustomer,
		CreatedAt: s.Now().UTC().Format(domain.TimeLayout),
	}
	if err := s.Accounts.Insert(ctx, acc); err != nil {
		return nil, err
	}
	notify(ctx, s.Notifier, "New user", fmt.Sprintf("%s signed up", username))
	return acc, nil
}

// Login checks credentials against the portal's role and binds a new session.
func (s *AuthService) Login(ctx context.Context, role domain.Role, username, password string) (*domain.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, apperr.Validation("missing_fields", "Username and password required")
	}
	acc, err := s.Accounts.Get(ctx, username)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, errBadCreds
		}
		return nil, err
	}
	if !s.Hasher.Verify(acc.Hash, password) || acc.Role != role {
		return nil, errBadCreds
	}
	sess := &domain.Session{
		ID:             uuid.NewString(),
		Username:       acc.Username,
		Role:           acc.Role,
		PhotographerID: acc.PhotographerID,
		CreatedAt:      s.Now().UTC().Format(domain.TimeLayout),
	}
	if err := s.Sessions.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *AuthService) Logout(ctx context.Context, sid string) error {
	if sid == "" {
		return nil
	}
	if err := s.Sessions.Delete(ctx, sid); err != nil && !apperr.IsNotFound(err) {
		return err
	}
	return nil
}

// Current resolves a session id; an unknown id yields (nil, nil).
func (s *AuthService) Current(ctx context.Context, sid string) (*domain.Session, error) {
	if sid == "" {
		return nil, nil
	}
	sess, err := s.Sessions.Get(ctx, sid)
	if err != nil {
		if apperr.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return sess, nil
}

// notify hands a message to the notifier and only logs failures.
func notify(ctx context.Context, n Notifier, subject, message string) {
	if n == nil {
		return
	}
	if err := n.Notify(ctx, subject, message); err != nil {
		applog.Logger().WithError(err).WithField("subject", subject).Warn("notify.fail")
	}
}
