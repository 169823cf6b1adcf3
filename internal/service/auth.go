package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/domain/model"
	"github.com/researchhub/portal-api/internal/ports"
)

// AuthStateOptions groups the caches the auth service maintains alongside
// sessions.
type AuthStateOptions struct {
	Profiles ports.ProfileCache
	Tokens   ports.TokenMirror
	Logger   *slog.Logger
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	State    AuthStateOptions
}

// AuthService orchestrates authentication flows: provider exchange, profile
// resolution, session persistence, and the per-session token mirror.
type AuthService struct {
	provider ports.AuthProvider
	sessions ports.SessionStore
	profiles ports.ProfileCache
	tokens   ports.TokenMirror
	logger   *slog.Logger

	mu          sync.Mutex
	mirrorTasks map[string]*mirrorTask
}

// mirrorTask is one in-flight token mirror write. Tasks are tracked by
// pointer so a finished task never evicts its successor from the map.
type mirrorTask struct {
	cancel context.CancelFunc
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.State.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider:    opts.Provider,
		sessions:    opts.Sessions,
		profiles:    opts.State.Profiles,
		tokens:      opts.State.Tokens,
		logger:      logger.With("component", "auth_service"),
		mirrorTasks: make(map[string]*mirrorTask),
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
// ReturnPath is where the user was originally heading; it feeds the
// onboarding decision and becomes the post-login destination.
type CompleteLoginInput struct {
	Code       string
	State      string
	Nonce      string
	ReturnPath string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session      domainauth.Session
	RedirectPath string
}

// CompleteLogin completes an authentication flow: exchanges the code for an
// identity, merges the cached profile, persists a session, and mirrors the
// access token. When the resolved identity still needs onboarding, the
// session is created with an unset role and the redirect points at the
// onboarding page instead of the destination.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	exchanged, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	cached := s.loadCachedProfile(ctx, exchanged.Identity.UserID)

	res := Resolve(ResolveInput{
		SignedIn: true,
		Identity: exchanged.Identity,
		Cached:   cached,
		Path:     input.ReturnPath,
	})

	session := domainauth.Session{
		ID:        generateSessionID(),
		User:      res.User,
		ExpiresAt: exchanged.Identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	redirect := input.ReturnPath
	switch res.Action.Kind {
	case ActionRedirect:
		redirect = res.Action.Path
	case ActionNone:
		// Resolution completed; persist the snapshot for re-resolution on the
		// next load. Failures degrade silently, the session already holds the
		// user.
		if cacheErr := s.profiles.SaveUser(ctx, res.User); cacheErr != nil {
			s.logger.WarnContext(ctx, "failed to cache resolved user", "user_id", res.User.ID, "err", cacheErr)
		}
		if redirect == "" {
			redirect = domainauth.DashboardPath(res.User.Role)
		}
	}

	s.startTokenMirror(session.ID, exchanged.AccessToken)

	return &CompleteLoginResult{
		Session:      session,
		RedirectPath: redirect,
	}, nil
}

// loadCachedProfile reads the onboarding-collected profile for the user.
// Malformed entries have already been removed by the cache; every failure
// mode degrades to "no cache" so resolution proceeds provider-only.
func (s *AuthService) loadCachedProfile(ctx context.Context, userID string) *domainauth.CachedProfile {
	p, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrNotFound):
		case errors.Is(err, ports.ErrMalformed):
			s.logger.WarnContext(ctx, "discarded malformed cached profile", "user_id", userID)
		default:
			s.logger.WarnContext(ctx, "failed to read cached profile", "user_id", userID, "err", err)
		}
		return nil
	}
	return &p
}

// startTokenMirror writes the access token to the mirror in a background
// task keyed by session ID. Logout cancels the task so a slow write cannot
// land after the session is gone.
func (s *AuthService) startTokenMirror(sessionID, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	task := &mirrorTask{cancel: cancel}

	s.mu.Lock()
	if prev, ok := s.mirrorTasks[sessionID]; ok {
		prev.cancel()
	}
	s.mirrorTasks[sessionID] = task
	s.mu.Unlock()

	go func() {
		defer s.clearMirrorTask(sessionID, task)
		if err := s.tokens.Save(ctx, sessionID, token); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Warn("failed to mirror session token", "session_id", sessionID, "err", err)
		}
	}()
}

func (s *AuthService) clearMirrorTask(sessionID string, task *mirrorTask) {
	task.cancel()
	s.mu.Lock()
	if current, ok := s.mirrorTasks[sessionID]; ok && current == task {
		delete(s.mirrorTasks, sessionID)
	}
	s.mu.Unlock()
}

// cancelTokenMirror cancels any outstanding mirror task for the session.
func (s *AuthService) cancelTokenMirror(sessionID string) {
	s.mu.Lock()
	if task, ok := s.mirrorTasks[sessionID]; ok {
		task.cancel()
		delete(s.mirrorTasks, sessionID)
	}
	s.mu.Unlock()
}

// GetSession retrieves a session by ID, cleaning up expired entries.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Token returns the mirrored access token for a session, or empty when the
// mirror has no entry. Backend calls proceed unauthenticated in that case.
func (s *AuthService) Token(ctx context.Context, sessionID string) string {
	if sessionID == "" {
		return ""
	}
	token, err := s.tokens.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			s.logger.WarnContext(ctx, "failed to read token mirror", "session_id", sessionID, "err", err)
		}
		return ""
	}
	return token
}

// Logout tears down a session: the session record, the token mirror, and the
// cached user snapshot are removed. The onboarding-collected profile cache
// entry is retained deliberately so the next sign-in resolves quickly.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	s.cancelTokenMirror(sessionID)

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return fmt.Errorf("get session: %w", err)
	}

	if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
		return fmt.Errorf("delete session: %w", deleteErr)
	}
	if mirrorErr := s.tokens.Delete(ctx, sessionID); mirrorErr != nil {
		s.logger.WarnContext(ctx, "failed to delete token mirror", "session_id", sessionID, "err", mirrorErr)
	}
	if err == nil && session.User.ID != "" {
		if cacheErr := s.profiles.DeleteUser(ctx, session.User.ID); cacheErr != nil {
			s.logger.WarnContext(ctx, "failed to delete cached user", "user_id", session.User.ID, "err", cacheErr)
		}
	}

	return nil
}

// ApplyProfile folds an authoritative profile into an existing session,
// typically right after onboarding. A set role is never overwritten with an
// empty one.
func (s *AuthService) ApplyProfile(ctx context.Context, sessionID string, p *model.Profile) (*domainauth.Session, error) {
	if p == nil {
		return nil, errors.New("profile is required")
	}

	session, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.User.ID != p.UserID {
		return nil, errors.New("profile does not belong to session user")
	}

	if role := domainauth.ParseRole(p.Role); role.IsSet() {
		session.User.Role = role
	}
	if p.Institution != "" {
		session.User.Institution = p.Institution
	}
	if p.Department != "" {
		session.User.Department = p.Department
	}

	if saveErr := s.sessions.Save(ctx, *session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}
	if cacheErr := s.profiles.SaveUser(ctx, session.User); cacheErr != nil {
		s.logger.WarnContext(ctx, "failed to cache resolved user", "user_id", session.User.ID, "err", cacheErr)
	}
	return session, nil
}

// RedirectToDashboard returns the landing route for the session's role. The
// boolean is false when no user is resolved; callers must not navigate then.
func (s *AuthService) RedirectToDashboard(session *domainauth.Session) (string, bool) {
	if session == nil || session.User.ID == "" {
		return "", false
	}
	return domainauth.DashboardPath(session.User.Role), true
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
