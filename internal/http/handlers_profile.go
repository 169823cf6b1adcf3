package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/domain/model"
	"github.com/researchhub/portal-api/internal/service"
)

// ProfileServiceInterface defines the profile operations the handlers need.
type ProfileServiceInterface interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	CompleteOnboarding(ctx context.Context, in service.CompleteOnboardingInput) (*model.Profile, error)
	Update(ctx context.Context, userID string, req *model.UpsertProfileRequest) (*model.Profile, error)
	GetUser(ctx context.Context, token, userID string) (*model.Profile, error)
	ListUsers(ctx context.Context, token string) ([]*model.Profile, error)
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*model.Profile, error)
}

// SessionUpdater applies a completed profile to an existing session.
type SessionUpdater interface {
	ApplyProfile(ctx context.Context, sessionID string, p *model.Profile) (*domainauth.Session, error)
}

// ProfileHandlers provides HTTP handlers for profile and user directory operations.
type ProfileHandlers struct {
	Svc      ProfileServiceInterface
	Sessions SessionUpdater
	Tokens   TokenSource
}

// Me handles GET /api/profile, returning the caller's own profile.
func (h *ProfileHandlers) Me(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.Get(r.Context(), requestUserID(r))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// Update handles PUT /api/profile.
func (h *ProfileHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpsertProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.Update(r.Context(), requestUserID(r), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	// Role or institution changes must reach the live session too.
	if session := GetSessionFromContext(r.Context()); session != nil {
		if _, applyErr := h.Sessions.ApplyProfile(r.Context(), session.ID, profile); applyErr != nil {
			WriteAppError(w, applyErr)
			return
		}
	}

	WriteJSON(w, http.StatusOK, profile)
}

// Onboarding handles POST /api/onboarding. It persists the onboarding form
// as the authoritative profile, promotes the session's role, and tells the
// client where to land next.
func (h *ProfileHandlers) Onboarding(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req model.UpsertProfileRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	profile, err := h.Svc.CompleteOnboarding(r.Context(), service.CompleteOnboardingInput{
		User:    session.User,
		Email:   session.User.Email,
		Request: &req,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	updated, err := h.Sessions.ApplyProfile(r.Context(), session.ID, profile)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"profile":     profile,
		"user":        updated.User,
		"redirect_to": domainauth.DashboardPath(updated.User.Role),
	})
}

// GetUser handles GET /api/users/{id}/profile, the public profile view.
func (h *ProfileHandlers) GetUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Svc.GetUser(r.Context(), requestToken(r, h.Tokens), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profile)
}

// ListUsers handles GET /api/users, the directory used by assignee and
// recipient pickers.
func (h *ProfileHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.Svc.ListUsers(r.Context(), requestToken(r, h.Tokens))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profiles)
}

// ListByRole handles GET /api/admin/users?role=<role>&limit=<n>&offset=<n>,
// the admin directory backed by the local profile store.
func (h *ProfileHandlers) ListByRole(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)
	offset := queryInt(r, "offset", 0)

	profiles, err := h.Svc.ListByRole(r.Context(), r.URL.Query().Get("role"), limit, offset)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, profiles)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
