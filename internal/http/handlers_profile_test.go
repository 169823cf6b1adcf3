package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/domain/model"
	"github.com/researchhub/portal-api/internal/service"
)

// fakeProfileService serves canned profiles and records onboarding input.
type fakeProfileService struct {
	gotOnboarding service.CompleteOnboardingInput
}

func (f *fakeProfileService) Get(_ context.Context, userID string) (*model.Profile, error) {
	return &model.Profile{UserID: userID, Role: "researcher", Institution: "Example University"}, nil
}

func (f *fakeProfileService) CompleteOnboarding(_ context.Context, in service.CompleteOnboardingInput) (*model.Profile, error) {
	f.gotOnboarding = in
	return &model.Profile{
		UserID:             in.User.ID,
		Email:              in.Email,
		Role:               in.Request.Role,
		Institution:        in.Request.Institution,
		OnboardingComplete: true,
	}, nil
}

func (f *fakeProfileService) Update(_ context.Context, userID string, req *model.UpsertProfileRequest) (*model.Profile, error) {
	return &model.Profile{UserID: userID, Role: req.Role, Institution: req.Institution, OnboardingComplete: true}, nil
}

func (f *fakeProfileService) GetUser(_ context.Context, _, userID string) (*model.Profile, error) {
	return &model.Profile{UserID: userID}, nil
}

func (f *fakeProfileService) ListUsers(context.Context, string) ([]*model.Profile, error) {
	return []*model.Profile{{UserID: "user-2"}}, nil
}

func (f *fakeProfileService) ListByRole(context.Context, string, int, int) ([]*model.Profile, error) {
	return []*model.Profile{{UserID: "user-3", Role: "student"}}, nil
}

func TestOnboarding_PromotesSessionRole(t *testing.T) {
	env := newAuthEnv()
	profiles := &fakeProfileService{}
	router := NewRouter(RouterServices{Auth: env.Auth, Profiles: profiles})

	// Session created before onboarding has no role yet.
	sess := domainauth.Session{
		ID:        "sess-onboarding",
		User:      domainauth.User{ID: "user-1", Email: "jordan.rivera@example.edu"},
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, env.Sessions.Save(context.Background(), sess))

	body := `{"role":"student","institution":"Example University"}`
	r := withSessionCookie(httptest.NewRequest(http.MethodPost, "/api/onboarding", strings.NewReader(body)), sess.ID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, domainauth.RouteStudentDashboard, out["redirect_to"])

	assert.Equal(t, "user-1", profiles.gotOnboarding.User.ID)
	assert.Equal(t, "jordan.rivera@example.edu", profiles.gotOnboarding.Email)

	// The live session now carries the selected role.
	updated, err := env.Auth.GetSession(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleStudent, updated.User.Role)
}

func TestProfileMe_ReturnsOwnProfile(t *testing.T) {
	env := newAuthEnv()
	router := NewRouter(RouterServices{Auth: env.Auth, Profiles: &fakeProfileService{}})

	sessionID := env.seedSession(t, domainauth.RoleResearcher)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/profile", nil), sessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "user-1", out["user_id"])
}

func TestProfileUpdate_AppliesToSession(t *testing.T) {
	env := newAuthEnv()
	router := NewRouter(RouterServices{Auth: env.Auth, Profiles: &fakeProfileService{}})

	sessionID := env.seedSession(t, domainauth.RoleResearcher)
	body := `{"role":"admin","institution":"Example University"}`
	r := withSessionCookie(httptest.NewRequest(http.MethodPut, "/api/profile", strings.NewReader(body)), sessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated, err := env.Auth.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, updated.User.Role)
}

func TestUsersDirectory(t *testing.T) {
	env := newAuthEnv()
	router := NewRouter(RouterServices{Auth: env.Auth, Profiles: &fakeProfileService{}})

	sessionID := env.seedSession(t, domainauth.RoleStudent)

	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/users", nil), sessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	r = withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/users/user-2/profile", nil), sessionID)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "user-2", out["user_id"])
}
