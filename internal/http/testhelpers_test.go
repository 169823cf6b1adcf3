package httpx

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	mocksauth "github.com/researchhub/portal-api/internal/mocks/auth"
	"github.com/researchhub/portal-api/internal/service"
)

// authEnv bundles a real auth service over in-memory stores for handler tests.
type authEnv struct {
	Auth     *service.AuthService
	Provider *mocksauth.MockAuthProvider
	Sessions *mocksauth.MemorySessionStore
	Tokens   *mocksauth.MemoryTokenMirror
	Profiles *mocksauth.MemoryProfileCache
}

func newAuthEnv() *authEnv {
	provider := mocksauth.NewMockAuthProvider()
	sessions := mocksauth.NewMemorySessionStore()
	tokens := mocksauth.NewMemoryTokenMirror()
	profiles := mocksauth.NewMemoryProfileCache()

	return &authEnv{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Provider: provider,
			Sessions: sessions,
			State: service.AuthStateOptions{
				Profiles: profiles,
				Tokens:   tokens,
			},
		}),
		Provider: provider,
		Sessions: sessions,
		Tokens:   tokens,
		Profiles: profiles,
	}
}

// seedSession stores a live session and returns its ID for use as a cookie value.
func (e *authEnv) seedSession(t *testing.T, role domainauth.Role) string {
	t.Helper()
	sess := domainauth.Session{
		ID: "sess-" + string(role) + "-1",
		User: domainauth.User{
			ID:        "user-1",
			Email:     "jordan.rivera@example.edu",
			FirstName: "Jordan",
			LastName:  "Rivera",
			Role:      role,
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, e.Sessions.Save(context.Background(), sess))
	return sess.ID
}

func withSessionCookie(r *http.Request, sessionID string) *http.Request {
	r.AddCookie(&http.Cookie{Name: "session_id", Value: sessionID})
	return r
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
