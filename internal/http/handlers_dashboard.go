package httpx

import (
	"context"
	"net/http"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/service"
)

// DashboardServiceInterface defines the dashboard aggregation the handler needs.
type DashboardServiceInterface interface {
	Summary(ctx context.Context, token, userID string, role domainauth.Role) (*service.DashboardSummary, error)
}

// DashboardHandlers provides the aggregated landing-page endpoint.
type DashboardHandlers struct {
	Svc    DashboardServiceInterface
	Tokens TokenSource
}

// Summary handles GET /api/dashboard.
func (h *DashboardHandlers) Summary(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	role := domainauth.RoleUnset
	if session != nil {
		role = session.User.Role
	}

	summary, err := h.Svc.Summary(r.Context(), requestToken(r, h.Tokens), requestUserID(r), role)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}

// Navigation handles GET /api/navigation, the role-aware menu.
func Navigation(w http.ResponseWriter, r *http.Request) {
	role := domainauth.RoleUnset
	if session := GetSessionFromContext(r.Context()); session != nil {
		role = session.User.Role
	}
	WriteJSON(w, http.StatusOK, domainauth.NavItems(role))
}
