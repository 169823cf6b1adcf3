package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// TokenSource resolves the mirrored backend token for a session. An empty
// string means no token is available and backend calls go out anonymously.
type TokenSource interface {
	Token(ctx context.Context, sessionID string) string
}

// requestToken returns the backend token for the current request's session.
func requestToken(r *http.Request, tokens TokenSource) string {
	session := GetSessionFromContext(r.Context())
	if session == nil || tokens == nil {
		return ""
	}
	return tokens.Token(r.Context(), session.ID)
}

// requestUserID returns the current session's user ID, or empty when absent.
func requestUserID(r *http.Request) string {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		return ""
	}
	return session.User.ID
}

// ProjectServiceInterface defines the project operations the handlers need.
type ProjectServiceInterface interface {
	List(ctx context.Context, token, userID string, opts model.ProjectsListOptions) ([]*model.Project, error)
	Get(ctx context.Context, token, id string) (*model.Project, error)
	Create(ctx context.Context, token, userID string, req *model.CreateProjectRequest) (*model.Project, error)
	Update(ctx context.Context, token, userID, id string, req *model.UpdateProjectRequest) (*model.Project, error)
	Delete(ctx context.Context, token, userID, id string) error
}

// ProjectHandlers provides HTTP handlers for project operations.
type ProjectHandlers struct {
	Svc    ProjectServiceInterface
	Tokens TokenSource
}

// List handles GET /api/projects?my_projects=true&filter=<jmespath>.
func (h *ProjectHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.ProjectsListOptions{
		MyProjects: r.URL.Query().Get("my_projects") == "true",
		Filter:     r.URL.Query().Get("filter"),
	}

	projects, err := h.Svc.List(r.Context(), requestToken(r, h.Tokens), requestUserID(r), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, projects)
}

// GetByID handles GET /api/projects/{id}.
func (h *ProjectHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	project, err := h.Svc.Get(r.Context(), requestToken(r, h.Tokens), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// Create handles POST /api/projects.
func (h *ProjectHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	project, err := h.Svc.Create(r.Context(), requestToken(r, h.Tokens), requestUserID(r), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, project)
}

// Update handles PUT /api/projects/{id}.
func (h *ProjectHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProjectRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	project, err := h.Svc.Update(r.Context(), requestToken(r, h.Tokens), requestUserID(r), r.PathValue("id"), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, project)
}

// Delete handles DELETE /api/projects/{id}.
func (h *ProjectHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_id",
			Err:     errors.New("project ID is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), requestToken(r, h.Tokens), requestUserID(r), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
