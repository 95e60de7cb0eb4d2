package service

import (
	"context"
	"fmt"
	"sync"

	"crossborder-remit/internal/core/domain"
	"crossborder-remit/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Session implements ports.IdentitySession for one authenticated user.
type Session struct {
	profiles ports.ProfileRepository
	log      zerolog.Logger

	mu      sync.RWMutex
	userID  uuid.UUID
	profile *domain.Profile
}

// OpenSession loads the user's profile. A missing profile is not an error:
// the session is open with Profile() == nil.
func OpenSession(ctx context.Context, profiles ports.ProfileRepository, userID uuid.UUID, log zerolog.Logger) (*Session, error) {
	s := &Session{
		profiles: profiles,
		userID:   userID,
		log:      log.With().Str("user_id", userID.String()).Logger(),
	}
	if _, err := s.RefreshProfile(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Identity returns the user id, or uuid.Nil once closed.
func (s *Session) Identity() uuid.UUID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// Profile returns a copy of the cached profile.
func (s *Session) Profile() *domain.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.Clone()
}

// RefreshProfile re-reads the profile from the ledger.
func (s *Session) RefreshProfile(ctx context.Context) (*domain.Profile, error) {
	id := s.Identity()
	if id == uuid.Nil {
		return nil, nil
	}

	profile, err := s.profiles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading profile: %w", err)
	}
	if profile == nil {
		s.log.Debug().Msg("no profile for identity")
	}

	s.mu.Lock()
	// Ignore a refresh that raced with Close.
	if s.userID == id {
		s.profile = profile
	}
	s.mu.Unlock()

	return profile.Clone(), nil
}

// Close clears the identity and the cached profile.
func (s *Session) Close() {
	s.mu.Lock()
	s.userID = uuid.Nil
	s.profile = nil
	s.mu.Unlock()
}
