package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
)

func TestRequireAuth_APIRequestGets401(t *testing.T) {
	env := newAuthEnv()
	handler := RequireAuth(env.Auth)(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "authentication_required", body["error"])
}

func TestRequireAuth_BrowserRequestRedirectsToLogin(t *testing.T) {
	env := newAuthEnv()
	handler := RequireAuth(env.Auth)(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/projects?tab=active", nil)
	r.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/auth/login?redirect_uri=%2Fprojects%3Ftab%3Dactive", w.Header().Get("Location"))
}

func TestRequireAuth_ValidSessionPassesThrough(t *testing.T) {
	env := newAuthEnv()
	var gotSession *domainauth.Session
	handler := RequireAuth(env.Auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession = GetSessionFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	sessionID := env.seedSession(t, domainauth.RoleResearcher)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/projects", nil), sessionID)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, gotSession)
	assert.Equal(t, "user-1", gotSession.User.ID)
}

func TestRequireRoles_WrongRoleDenied(t *testing.T) {
	env := newAuthEnv()
	handler := RequireRoles(env.Auth, nil, domainauth.RoleAdmin)(okHandler())

	sessionID := env.seedSession(t, domainauth.RoleResearcher)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), sessionID)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusForbidden, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "insufficient_permissions", body["error"])
}

func TestRequireRoles_WrongRoleBrowserRedirectsToUnauthorized(t *testing.T) {
	env := newAuthEnv()
	handler := RequireRoles(env.Auth, nil, domainauth.RoleAdmin)(okHandler())

	sessionID := env.seedSession(t, domainauth.RoleStudent)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil), sessionID)
	r.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, domainauth.RouteUnauthorized, w.Header().Get("Location"))
}

func TestRequireRoles_MatchingRoleAdmitted(t *testing.T) {
	env := newAuthEnv()
	handler := RequireRoles(env.Auth, nil, domainauth.RoleAdmin)(okHandler())

	sessionID := env.seedSession(t, domainauth.RoleAdmin)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), sessionID)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoles_UnresolvedRoleAdmitted(t *testing.T) {
	// A session created before onboarding finishes has no role yet. The guard
	// lets it through instead of locking the user out of every gated page,
	// and the first response carries a Warning header prompting role setup.
	env := newAuthEnv()
	handler := RequireRoles(env.Auth, nil, domainauth.RoleAdmin)(okHandler())

	sessionID := env.seedSession(t, domainauth.RoleUnset)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), sessionID)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, roleWarning, w.Header().Get("Warning"))
}

func TestRequireRoles_UnresolvedRoleWarnsOncePerSession(t *testing.T) {
	env := newAuthEnv()
	handler := RequireRoles(env.Auth, nil, domainauth.RoleAdmin)(okHandler())

	sessionID := env.seedSession(t, domainauth.RoleUnset)
	for _, wantWarning := range []bool{true, false, false} {
		r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), sessionID)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		if wantWarning {
			assert.Equal(t, roleWarning, w.Header().Get("Warning"))
		} else {
			assert.Empty(t, w.Header().Get("Warning"))
		}
	}

	// A different pre-onboarding session gets its own warning.
	other := domainauth.Session{
		ID:        "sess-unset-2",
		User:      domainauth.User{ID: "user-2", Email: "casey.morgan@example.edu"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, env.Sessions.Save(context.Background(), other))

	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), other.ID)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, roleWarning, w.Header().Get("Warning"))
}

func TestRequireRoles_NoSessionDenied(t *testing.T) {
	env := newAuthEnv()
	handler := RequireRoles(env.Auth, nil, domainauth.RoleAdmin)(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOptionalAuth_PassesThroughWithoutSession(t *testing.T) {
	env := newAuthEnv()
	handler := OptionalAuth(env.Auth)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := GetUserSessionFromContext(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/navigation", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
