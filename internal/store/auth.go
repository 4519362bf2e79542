package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Auth holds the authentication state: logged out, or logged in with a
// bearer token. The token is persisted through the TokenStore so a later
// run can rehydrate the session without contacting the backend.
type Auth struct {
	authenticator Authenticator
	tokens        TokenStore
	log           *logrus.Logger

	mu            sync.Mutex
	authenticated bool
	token         string
}

// NewAuth creates a logged-out auth container. Call Initialize to rehydrate
// a persisted session.
func NewAuth(authenticator Authenticator, tokens TokenStore, log *logrus.Logger) *Auth {
	if log == nil {
		log = logrus.New()
	}
	return &Auth{
		authenticator: authenticator,
		tokens:        tokens,
		log:           log,
	}
}

// Initialize rehydrates the session from durable storage. A persisted token
// is trusted as-is, with no expiry check or backend round trip: a stale
// token stays accepted until the first rejected request.
func (a *Auth) Initialize() {
	token, err := a.tokens.Load()
	if err != nil {
		a.log.WithError(err).Warn("failed to load persisted token")
		return
	}
	if token != "" {
		a.mu.Lock()
		a.authenticated = true
		a.token = token
		a.mu.Unlock()
	}
}

// Login exchanges credentials against the auth endpoint. On success the
// token is persisted and the state moves to logged in; on any failure the
// state is left unchanged.
func (a *Auth) Login(ctx context.Context, email, password string) error {
	token, err := a.authenticator.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if err := a.tokens.Save(token); err != nil {
		// The session still holds for this process, it just will not
		// survive a restart.
		a.log.WithError(err).Warn("failed to persist token")
	}
	a.mu.Lock()
	a.authenticated = true
	a.token = token
	a.mu.Unlock()
	return nil
}

// Logout clears durable storage and the in-memory session. It always
// succeeds from the caller's point of view.
func (a *Auth) Logout() {
	if err := a.tokens.Clear(); err != nil {
		a.log.WithError(err).Warn("failed to clear persisted token")
	}
	a.mu.Lock()
	a.authenticated = false
	a.token = ""
	a.mu.Unlock()
}

// Authenticated reports whether a session is active.
func (a *Auth) Authenticated() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.authenticated
}

// Token returns the active bearer token, or an empty string when logged
// out.
func (a *Auth) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}
