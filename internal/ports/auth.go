package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
)

// ErrNotFound is returned by stores and caches when no entry exists for the
// given key.
var ErrNotFound = errors.New("not found")

// ErrMalformed is returned by caches when a stored entry exists but cannot be
// parsed. The offending entry has already been removed by the time callers
// see this error.
var ErrMalformed = errors.New("malformed cache entry")

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// ExchangeResult carries the authenticated identity together with the opaque
// bearer credential the provider issued for it. The provider stays
// authoritative for the token; callers may mirror it for synchronous reads.
type ExchangeResult struct {
	Identity    domainauth.Identity
	AccessToken string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns
	// the authenticated identity plus its session token.
	Exchange(ctx context.Context, in ExchangeInput) (ExchangeResult, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenMirror is a best-effort cache of provider session tokens keyed by
// session ID. It enforces no expiry of its own beyond the TTL given at write;
// the provider remains authoritative.
type TokenMirror interface {
	Save(ctx context.Context, sessionID, token string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// ProfileCache holds the two per-user cache entries the resolution path uses:
// the resolved user snapshot and the onboarding-collected profile blob. The
// profile entry deliberately survives sign-out; the user entry does not.
type ProfileCache interface {
	SaveUser(ctx context.Context, user domainauth.User) error
	GetUser(ctx context.Context, userID string) (domainauth.User, error)
	DeleteUser(ctx context.Context, userID string) error

	SaveProfile(ctx context.Context, userID string, p domainauth.CachedProfile) error
	// GetProfile returns the cached profile, or ErrMalformed when the stored
	// blob fails to parse. Callers treat malformed entries as absent.
	GetProfile(ctx context.Context, userID string) (domainauth.CachedProfile, error)
	DeleteProfile(ctx context.Context, userID string) error
}
