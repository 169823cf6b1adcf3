package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/domain/model"
	apperrors "github.com/researchhub/portal-api/internal/errors"
)

// fakeProjectService records the arguments the router hands it.
type fakeProjectService struct {
	gotToken  string
	gotUserID string
	gotOpts   model.ProjectsListOptions
	getErr    error
}

func (f *fakeProjectService) List(_ context.Context, token, userID string, opts model.ProjectsListOptions) ([]*model.Project, error) {
	f.gotToken = token
	f.gotUserID = userID
	f.gotOpts = opts
	return []*model.Project{{ID: "proj-1", Title: "Coral Reef Survey"}}, nil
}

func (f *fakeProjectService) Get(context.Context, string, string) (*model.Project, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &model.Project{ID: "proj-1"}, nil
}

func (f *fakeProjectService) Create(_ context.Context, _, _ string, req *model.CreateProjectRequest) (*model.Project, error) {
	return &model.Project{ID: "proj-2", Title: req.Title}, nil
}

func (f *fakeProjectService) Update(context.Context, string, string, string, *model.UpdateProjectRequest) (*model.Project, error) {
	return &model.Project{ID: "proj-1"}, nil
}

func (f *fakeProjectService) Delete(context.Context, string, string, string) error { return nil }

func newTestRouter(env *authEnv, projects ProjectServiceInterface) http.Handler {
	return NewRouter(RouterServices{
		Auth:        env.Auth,
		Projects:    projects,
		CallbackURL: "http://portal.example.edu/auth/callback",
	})
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(newAuthEnv(), &fakeProjectService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}

func TestRouter_UnknownAPIRouteReturnsJSON404(t *testing.T) {
	router := newTestRouter(newAuthEnv(), &fakeProjectService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `"not_found"`)
}

func TestRouter_ProjectsRequireAuth(t *testing.T) {
	router := newTestRouter(newAuthEnv(), &fakeProjectService{})

	r := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_ProjectsListPassesTokenAndQuery(t *testing.T) {
	env := newAuthEnv()
	projects := &fakeProjectService{}
	router := newTestRouter(env, projects)

	sessionID := env.seedSession(t, domainauth.RoleResearcher)
	require.NoError(t, env.Tokens.Save(context.Background(), sessionID, "bearer-token"))

	url := "/api/projects?my_projects=true&filter=" + "%5B%3Fstatus%20%3D%3D%20'active'%5D"
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, url, nil), sessionID)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bearer-token", projects.gotToken)
	assert.Equal(t, "user-1", projects.gotUserID)
	assert.True(t, projects.gotOpts.MyProjects)
	assert.Equal(t, "[?status == 'active']", projects.gotOpts.Filter)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "proj-1", out[0]["id"])
}

func TestRouter_ServiceErrorsMapToStatus(t *testing.T) {
	env := newAuthEnv()
	sessionID := env.seedSession(t, domainauth.RoleResearcher)

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", apperrors.NotFound("project not found"), http.StatusNotFound, "not_found"},
		{"validation", apperrors.Validation("bad filter"), http.StatusBadRequest, "validation"},
		{"forbidden", apperrors.Forbidden("not yours"), http.StatusForbidden, "forbidden"},
		{"upstream", apperrors.Upstream("backend unreachable", nil), http.StatusBadGateway, "upstream"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := newTestRouter(env, &fakeProjectService{getErr: tc.err})

			r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/projects/proj-1", nil), sessionID)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantCode, body["error"])
		})
	}
}

func TestRouter_AdminDirectoryIsRoleGated(t *testing.T) {
	env := newAuthEnv()
	router := NewRouter(RouterServices{
		Auth:     env.Auth,
		Profiles: &fakeProfileService{},
	})

	researcher := env.seedSession(t, domainauth.RoleResearcher)
	r := withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), researcher)
	r.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin := env.seedSession(t, domainauth.RoleAdmin)
	r = withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/admin/users?role=student", nil), admin)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_LoginRateLimit(t *testing.T) {
	env := newAuthEnv()
	router := NewRouter(RouterServices{
		Auth:               env.Auth,
		CallbackURL:        "http://portal.example.edu/auth/callback",
		LoginRatePerMinute: 2,
	})

	var last int
	for range 3 {
		r := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		r.RemoteAddr = "203.0.113.9:4411"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
