package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
)

// AuthFacade is the full slice of the auth service the router wires up:
// login flow handlers, session resolution for guards, the token mirror for
// backend calls, and session updates after onboarding.
type AuthFacade interface {
	AuthServiceInterface
	TokenSource
	SessionUpdater
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthFacade
	Profiles  ProfileServiceInterface
	Projects  ProjectServiceInterface
	Tasks     TaskServiceInterface
	Messages  MessageServiceInterface
	Dashboard DashboardServiceInterface

	// CallbackURL is the absolute redirect URL registered with the identity provider.
	CallbackURL  string
	CookieDomain string
	// LoginRatePerMinute caps per-IP requests on the auth endpoints. Zero disables the limiter.
	LoginRatePerMinute int
	Logger             *slog.Logger
}

// NewRouter creates and configures the HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CallbackURL:  services.CallbackURL,
		CookieDomain: services.CookieDomain,
		Logger:       services.Logger,
	}
	profileHandlers := &ProfileHandlers{Svc: services.Profiles, Sessions: services.Auth, Tokens: services.Auth}
	projectHandlers := &ProjectHandlers{Svc: services.Projects, Tokens: services.Auth}
	taskHandlers := &TaskHandlers{Svc: services.Tasks, Tokens: services.Auth}
	messageHandlers := &MessageHandlers{Svc: services.Messages, Tokens: services.Auth}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard, Tokens: services.Auth}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	registerAuthRoutes(mux, authHandlers, services.LoginRatePerMinute)

	authed := RequireAuth(services.Auth)
	adminOnly := RequireRoles(services.Auth, services.Logger, domainauth.RoleAdmin)

	registerCRUD(mux, crudRoutes{
		Base:       "/api/projects",
		List:       projectHandlers.List,
		GetByID:    projectHandlers.GetByID,
		Create:     projectHandlers.Create,
		Update:     projectHandlers.Update,
		Delete:     projectHandlers.Delete,
		Middleware: authed,
	})
	registerCRUD(mux, crudRoutes{
		Base:       "/api/tasks",
		List:       taskHandlers.List,
		GetByID:    taskHandlers.GetByID,
		Create:     taskHandlers.Create,
		Update:     taskHandlers.Update,
		Delete:     taskHandlers.Delete,
		Middleware: authed,
	})

	mux.Handle("GET /api/messages/conversations", authed(http.HandlerFunc(messageHandlers.Conversations)))
	mux.Handle("GET /api/messages/{userId}", authed(http.HandlerFunc(messageHandlers.History)))
	mux.Handle("POST /api/messages", authed(http.HandlerFunc(messageHandlers.Send)))
	mux.Handle("PUT /api/messages/{userId}/read", authed(http.HandlerFunc(messageHandlers.MarkRead)))

	mux.Handle("GET /api/profile", authed(http.HandlerFunc(profileHandlers.Me)))
	mux.Handle("PUT /api/profile", authed(http.HandlerFunc(profileHandlers.Update)))
	mux.Handle("POST /api/onboarding", authed(http.HandlerFunc(profileHandlers.Onboarding)))
	mux.Handle("GET /api/users", authed(http.HandlerFunc(profileHandlers.ListUsers)))
	mux.Handle("GET /api/users/{id}/profile", authed(http.HandlerFunc(profileHandlers.GetUser)))
	mux.Handle("GET /api/admin/users", adminOnly(http.HandlerFunc(profileHandlers.ListByRole)))

	mux.Handle("GET /api/dashboard", authed(http.HandlerFunc(dashboardHandlers.Summary)))
	mux.Handle("GET /api/navigation", authed(http.HandlerFunc(Navigation)))

	// Unmatched API paths get a JSON 404 instead of the ServeMux text page.
	mux.Handle("/api/", http.HandlerFunc(apiNotFound))

	return mux
}

func apiNotFound(w http.ResponseWriter, _ *http.Request) {
	WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("no such endpoint")})
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, ratePerMinute int) {
	limit := func(next http.Handler) http.Handler { return next }
	if ratePerMinute > 0 {
		limit = httprate.LimitByIP(ratePerMinute, time.Minute)
	}

	mux.Handle("GET /auth/login", limit(http.HandlerFunc(h.Login)))
	mux.Handle("GET /auth/callback", limit(http.HandlerFunc(h.Callback)))
	mux.Handle("POST /auth/logout", limit(http.HandlerFunc(h.Logout)))
	mux.Handle("GET /auth/status", http.HandlerFunc(h.Status))
}

// crudRoutes groups the standard handlers for a resource base path.
type crudRoutes struct {
	Base       string
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Create     http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

// registerCRUD registers standard CRUD routes for a resource base path, applying mw if non-nil.
func registerCRUD(mux *http.ServeMux, routes crudRoutes) {
	mw := routes.Middleware
	if mw == nil {
		mw = func(h http.Handler) http.Handler { return h }
	}

	mux.Handle("GET "+routes.Base, mw(routes.List))
	mux.Handle("POST "+routes.Base, mw(routes.Create))
	mux.Handle("GET "+routes.Base+"/{id}", mw(routes.GetByID))
	mux.Handle("PUT "+routes.Base+"/{id}", mw(routes.Update))
	mux.Handle("DELETE "+routes.Base+"/{id}", mw(routes.Delete))
}
