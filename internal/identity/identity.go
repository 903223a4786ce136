// Package identity manages the locally persisted directory of registered
// users and the current-identity pointer. It is a convenience cache for the
// chat widget, not an authentication system: tokens gate nothing server-side.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Osisami00/Nelfund-Project/internal/model"
	"github.com/Osisami00/Nelfund-Project/internal/phone"
	"github.com/Osisami00/Nelfund-Project/internal/store"
)

// Service handles registration, login and the active identity.
type Service struct {
	store store.Store
}

func New(s store.Store) *Service { return &Service{store: s} }

// Register creates a directory entry for a new phone number and makes it the
// active identity. The phone is canonicalized first, so equivalent inputs
// collide as expected. Returns model.ErrValidation for a bad number and
// model.ErrDuplicatePhone when the canonical form is already registered.
func (s *Service) Register(ctx context.Context, rawPhone, countryCode, fullName string) (*model.User, error) {
	if !phone.Valid(rawPhone, countryCode) {
		return nil, fmt.Errorf("%w: invalid phone number for country code %s", model.ErrValidation, countryCode)
	}
	canonical := phone.Format(rawPhone, countryCode)

	if _, err := s.store.Directory().GetByPhone(ctx, canonical); err == nil {
		return nil, model.ErrDuplicatePhone
	} else if !errors.Is(err, model.ErrNotFound) {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Phone:        &canonical,
		CountryCode:  &countryCode,
		FullName:     fullName,
		CreatedAt:    time.Now().UTC(),
		SessionToken: uuid.New().String(),
	}
	if err := s.store.Directory().Put(ctx, u); err != nil {
		return nil, err
	}
	if err := s.store.Current().Set(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login matches a canonical phone against the directory, refreshes the
// session token on the matched record and makes it the active identity.
// Returns model.ErrPhoneNotFound when no entry matches.
func (s *Service) Login(ctx context.Context, rawPhone, countryCode string) (*model.User, error) {
	if !phone.Valid(rawPhone, countryCode) {
		return nil, fmt.Errorf("%w: invalid phone number for country code %s", model.ErrValidation, countryCode)
	}
	canonical := phone.Format(rawPhone, countryCode)

	u, err := s.store.Directory().GetByPhone(ctx, canonical)
	if errors.Is(err, model.ErrNotFound) {
		return nil, model.ErrPhoneNotFound
	}
	if err != nil {
		return nil, err
	}

	u.SessionToken = uuid.New().String()
	if err := s.store.Directory().Put(ctx, u); err != nil {
		return nil, err
	}
	if err := s.store.Current().Set(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// GuestLogin creates an ephemeral guest identity and makes it active. Guests
// never enter the directory; logout simply discards them.
func (s *Service) GuestLogin(ctx context.Context) (*model.User, error) {
	u := &model.User{
		ID:           uuid.New().String(),
		FullName:     "Guest",
		CreatedAt:    time.Now().UTC(),
		SessionToken: uuid.New().String(),
		IsGuest:      true,
	}
	if err := s.store.Current().Set(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Logout clears the active identity. Directory entries are untouched.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Current().Clear(ctx)
}

// CurrentUser returns the active identity, or nil when none is set.
func (s *Service) CurrentUser(ctx context.Context) (*model.User, error) {
	u, err := s.store.Current().Get(ctx)
	if errors.Is(err, model.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

// IsAuthenticated reports whether any identity (guest included) is active.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	u, err := s.CurrentUser(ctx)
	return err == nil && u != nil
}
