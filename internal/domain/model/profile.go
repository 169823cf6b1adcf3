//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"
)

const maxBioLen = 2000

// Profile is the onboarding-collected profile record for a portal user.
// The portal's profile store is authoritative for this data; provider
// metadata and the local cache are derived views.
type Profile struct {
	UserID             string    `json:"user_id"               db:"user_id"`
	Email              string    `json:"email"                 db:"email"`
	FirstName          string    `json:"first_name"            db:"first_name"`
	LastName           string    `json:"last_name"             db:"last_name"`
	Role               string    `json:"role"                  db:"role"`
	Institution        string    `json:"institution,omitempty" db:"institution"`
	Department         string    `json:"department,omitempty"  db:"department"`
	Bio                string    `json:"bio,omitempty"         db:"bio"`
	OnboardingComplete bool      `json:"onboarding_complete"   db:"onboarding_complete"`
	CreatedAt          time.Time `json:"created_at"            db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"            db:"updated_at"`
}

// UpsertProfileRequest represents the onboarding form: role selection plus
// optional enrichment fields.
type UpsertProfileRequest struct {
	Role        string `json:"role"`
	Institution string `json:"institution,omitempty"`
	Department  string `json:"department,omitempty"`
	Bio         string `json:"bio,omitempty"`
}

// Validate checks the request for obvious problems before it is persisted.
func (r *UpsertProfileRequest) Validate() error {
	if strings.TrimSpace(r.Role) == "" {
		return errors.New("role is required")
	}
	if len(r.Bio) > maxBioLen {
		return errors.New("bio is too long")
	}
	return nil
}
