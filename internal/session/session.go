// Package session owns the logged-in user state: initialized empty,
// populated by a session check at startup, mutated only by login/logout, and
// handed to the handlers instead of being reached for as an ad hoc global.
package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"mayagen-web/internal/backend"
	"mayagen-web/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

type Session struct {
	mu    sync.RWMutex
	token string
	user  *model.User

	// persist writes the token to durable storage (the user config file);
	// an empty token clears it
	persist func(token string) error
}

func New(token string, persist func(string) error) *Session {
	if persist == nil {
		persist = func(string) error { return nil }
	}
	return &Session{token: token, persist: persist}
}

// Token returns the current session token, empty when logged out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns the logged-in user, or nil
func (s *Session) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Session) LoggedIn() bool {
	return s.User() != nil
}

// Restore runs the startup session check. No token, or a token whose
// expiry has already passed, means logged-out without contacting the
// server. A 401 from the backend is expected session expiry and is not
// logged as an error.
func (s *Session) Restore(ctx context.Context, api *backend.Client) {
	if s.Token() == "" {
		return
	}
	if expired(s.Token()) {
		s.clear()
		return
	}

	user, err := api.Me(ctx)
	if err != nil {
		if !errors.Is(err, backend.ErrUnauthorized) {
			log.Printf("Session check failed: %v", err)
		}
		s.clear()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// Login exchanges credentials for a token, persists it, and re-fetches the
// user profile
func (s *Session) Login(ctx context.Context, api *backend.Client, username, password string) error {
	token, err := api.Login(ctx, username, password)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.persist(token); err != nil {
		log.Printf("Warning: failed to persist token: %v", err)
	}

	user, err := api.Me(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// Logout clears the session locally; the token is never revoked server-side
func (s *Session) Logout() {
	s.clear()
}

func (s *Session) clear() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.mu.Unlock()
	if err := s.persist(""); err != nil {
		log.Printf("Warning: failed to clear persisted token: %v", err)
	}
}

// expired peeks at the token's exp claim without verifying the signature
// (verification is the backend's job). Opaque or claim-less tokens pass
// through to the server check.
func expired(token string) bool {
	claims := jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return false
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return claims.ExpiresAt.Before(time.Now())
}
