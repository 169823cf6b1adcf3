package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below; RoleUnset marks a user whose
// role has not been configured yet and is distinct from any member of the set.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleResearcher Role = "researcher"
	RoleStudent    Role = "student"
	RoleUnset      Role = ""
)

// ParseRole maps a loosely-typed role string from an external system onto the
// closed role set. Unknown values map to RoleUnset rather than falling through
// to a default.
func ParseRole(raw string) Role {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin
	case RoleResearcher:
		return RoleResearcher
	case RoleStudent:
		return RoleStudent
	case RoleUnset:
		return RoleUnset
	default:
		return RoleUnset
	}
}

// IsSet reports whether the role has been configured.
func (r Role) IsSet() bool { return r != RoleUnset }

// Metadata carries the custom per-user fields the identity provider stores for
// the portal. All fields are provider-owned and may be absent.
type Metadata struct {
	Role               string
	Institution        string
	Department         string
	OnboardingComplete bool
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (sub)
	FirstName string
	LastName  string
	Email     string
	ImageURL  string
	Metadata  Metadata
	ExpiresAt time.Time // absolute expiry from IdP token
}

// User is the normalized portal user produced by resolution. It is either
// absent (signed out / unresolved) or fully populated except for the optional
// enrichment fields.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Role        Role   `json:"role"`
	Institution string `json:"institution,omitempty"`
	Department  string `json:"department,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// CachedProfile is the locally cached profile blob written during onboarding
// and kept across sign-out to speed up re-resolution.
type CachedProfile struct {
	Role        string `json:"role,omitempty"`
	Institution string `json:"institution,omitempty"`
	Department  string `json:"department,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier.
type Session struct {
	ID        string    `json:"id"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HasRole reports whether the session user's role has been configured.
func (s Session) HasRole() bool { return s.User.Role.IsSet() }
