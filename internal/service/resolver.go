package service

import (
	"strings"

	"golang.org/x/net/publicsuffix"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
)

// ActionKind tags the navigation outcome of a resolution pass.
type ActionKind int

const (
	// ActionNone means resolution completed and no navigation is required.
	ActionNone ActionKind = iota
	// ActionRedirect means the caller should navigate to Action.Path before
	// treating resolution as complete.
	ActionRedirect
)

// Action is the navigation decision produced by Resolve. Resolution itself
// performs no navigation and no I/O; the caller interprets the action.
type Action struct {
	Kind ActionKind
	Path string
}

// ResolveInput carries both identity sources into a resolution pass: the
// provider record and the locally cached profile. Cached is nil when the
// cache had no entry (or the entry was malformed and discarded).
type ResolveInput struct {
	SignedIn bool
	Identity domainauth.Identity
	Cached   *domainauth.CachedProfile
	Path     string
}

// ResolveResult is the outcome of a resolution pass.
type ResolveResult struct {
	User   domainauth.User
	Action Action
}

// Resolve merges provider metadata with the cached profile into one
// normalized user. Provider fields win; the cache fills gaps; documented
// defaults apply last. When the user still needs onboarding, Resolve returns
// a redirect action and leaves the role unset rather than defaulting it.
//
// Resolve is a pure function: same inputs, same output, no side effects.
func Resolve(in ResolveInput) ResolveResult {
	if !in.SignedIn {
		return ResolveResult{Action: Action{Kind: ActionNone}}
	}

	meta := in.Identity.Metadata

	rawRole := meta.Role
	institution := meta.Institution
	department := meta.Department
	if in.Cached != nil {
		if rawRole == "" {
			rawRole = in.Cached.Role
		}
		if institution == "" {
			institution = in.Cached.Institution
		}
		if department == "" {
			department = in.Cached.Department
		}
	}

	user := domainauth.User{
		ID:          in.Identity.UserID,
		Email:       in.Identity.Email,
		FirstName:   in.Identity.FirstName,
		LastName:    in.Identity.LastName,
		Role:        domainauth.ParseRole(rawRole),
		Institution: institution,
		Department:  department,
		ImageURL:    in.Identity.ImageURL,
	}

	// The onboarding decision looks at the raw sources, never at the
	// normalized default: a user without a role from either source has not
	// onboarded, even though normalization would hand them the student role.
	needsOnboarding := !meta.OnboardingComplete && rawRole == "" && in.Path != domainauth.RouteOnboarding
	if needsOnboarding {
		return ResolveResult{
			User:   user,
			Action: Action{Kind: ActionRedirect, Path: domainauth.RouteOnboarding},
		}
	}

	if !user.Role.IsSet() {
		user.Role = domainauth.RoleStudent
	}
	if user.Institution == "" {
		user.Institution = institutionFromEmail(in.Identity.Email)
	}

	return ResolveResult{User: user, Action: Action{Kind: ActionNone}}
}

// institutionFromEmail derives an institution hint from the registrable part
// of the user's email domain. Returns empty when nothing sensible can be
// derived; the field stays optional.
func institutionFromEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	domain := strings.ToLower(email[at+1:])

	org, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return ""
	}
	return org
}
