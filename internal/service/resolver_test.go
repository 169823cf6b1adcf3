package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
)

func signedInIdentity(meta domainauth.Metadata) domainauth.Identity {
	return domainauth.Identity{
		UserID:    "user-1",
		FirstName: "Jordan",
		LastName:  "Rivera",
		Email:     "jordan.rivera@research.example.edu",
		Metadata:  meta,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestResolve_SignedOut(t *testing.T) {
	res := Resolve(ResolveInput{SignedIn: false})
	assert.Empty(t, res.User.ID)
	assert.Equal(t, ActionNone, res.Action.Kind)
}

func TestResolve_ProviderRoleWins(t *testing.T) {
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{Role: "admin", OnboardingComplete: true}),
		Cached:   &domainauth.CachedProfile{Role: "student", Institution: "Cached U"},
		Path:     domainauth.RouteDashboard,
	})

	assert.Equal(t, ActionNone, res.Action.Kind)
	assert.Equal(t, domainauth.RoleAdmin, res.User.Role)
	// Provider had no institution, so the cache fills the gap.
	assert.Equal(t, "Cached U", res.User.Institution)
}

func TestResolve_CacheFillsMissingRole(t *testing.T) {
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{OnboardingComplete: true}),
		Cached:   &domainauth.CachedProfile{Role: "researcher", Department: "Biology"},
		Path:     domainauth.RouteDashboard,
	})

	assert.Equal(t, ActionNone, res.Action.Kind)
	assert.Equal(t, domainauth.RoleResearcher, res.User.Role)
	assert.Equal(t, "Biology", res.User.Department)
}

func TestResolve_Idempotent(t *testing.T) {
	in := ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{Role: "admin", Institution: "Example University", OnboardingComplete: true}),
		Cached:   &domainauth.CachedProfile{Role: "student"},
		Path:     domainauth.RouteDashboard,
	}

	first := Resolve(in)
	second := Resolve(in)
	assert.Equal(t, first, second)
}

func TestResolve_OnboardingRedirect(t *testing.T) {
	// Signed in, no role anywhere, onboarding not complete, heading to the
	// dashboard: resolution hands back a redirect instead of completing.
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{}),
		Cached:   nil,
		Path:     domainauth.RouteDashboard,
	})

	assert.Equal(t, ActionRedirect, res.Action.Kind)
	assert.Equal(t, domainauth.RouteOnboarding, res.Action.Path)
	// The role stays unset; the student default never applies here.
	assert.Equal(t, domainauth.RoleUnset, res.User.Role)
}

func TestResolve_NoOnboardingRedirectOnOnboardingPage(t *testing.T) {
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{}),
		Path:     domainauth.RouteOnboarding,
	})

	assert.Equal(t, ActionNone, res.Action.Kind)
}

func TestResolve_CachedRoleSuppressesOnboarding(t *testing.T) {
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{}),
		Cached:   &domainauth.CachedProfile{Role: "researcher"},
		Path:     domainauth.RouteDashboard,
	})

	assert.Equal(t, ActionNone, res.Action.Kind)
	assert.Equal(t, domainauth.RoleResearcher, res.User.Role)
}

func TestResolve_StudentDefaultAtFinalNormalization(t *testing.T) {
	// Onboarding already complete, but no role was ever resolvable: the
	// student default applies only now.
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{OnboardingComplete: true}),
		Path:     domainauth.RouteDashboard,
	})

	assert.Equal(t, ActionNone, res.Action.Kind)
	assert.Equal(t, domainauth.RoleStudent, res.User.Role)
}

func TestResolve_UnknownRoleTreatedAsUnset(t *testing.T) {
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{Role: "superuser", OnboardingComplete: true}),
		Path:     domainauth.RouteDashboard,
	})

	// Unknown roles never leak through; normalization lands on student.
	assert.Equal(t, domainauth.RoleStudent, res.User.Role)
}

func TestResolve_InstitutionInferredFromEmail(t *testing.T) {
	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: signedInIdentity(domainauth.Metadata{Role: "researcher", OnboardingComplete: true}),
		Path:     domainauth.RouteDashboard,
	})

	assert.Equal(t, "example.edu", res.User.Institution)
}

func TestInstitutionFromEmail(t *testing.T) {
	tests := []struct {
		email string
		want  string
	}{
		{"a@cs.mit.edu", "mit.edu"},
		{"a@example.com", "example.com"},
		{"no-at-sign", ""},
		{"trailing@", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, institutionFromEmail(tt.email), "email %q", tt.email)
	}
}
