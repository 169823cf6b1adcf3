package httpx

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// SessionResolver is the slice of the auth service the middleware needs.
type SessionResolver interface {
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

// RequireAuth returns a middleware that requires an authenticated session.
// API requests get a 401 JSON response; page requests are redirected to the
// login endpoint with the original path preserved.
func RequireAuth(authSvc SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				denyUnauthenticated(w, r)
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// roleWarning is the Warning header value sent the first time an
// unset-role session passes a role gate, prompting role configuration.
const roleWarning = `299 - "account role not configured; complete onboarding"`

// RequireRoles returns a middleware that admits only sessions whose role is
// in the allowed set. A session whose role has not been resolved yet, because
// onboarding is still pending, is admitted rather than locked out of every
// gated page; the first such admission carries a Warning header so the client
// can prompt for role configuration, and is logged once per session.
func RequireRoles(authSvc SessionResolver, logger *slog.Logger, allowed ...domainauth.Role) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	// Session IDs already warned. Entries are never reaped; sessions are
	// short-lived relative to process lifetime.
	var warned sync.Map
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := getSessionFromRequest(r, authSvc)
			if session == nil {
				denyUnauthenticated(w, r)
				return
			}

			if !roleAllowed(session.User.Role, allowed) {
				if session.User.Role.IsSet() {
					denyForbidden(w, r)
					return
				}
				if _, seen := warned.LoadOrStore(session.ID, struct{}{}); !seen {
					w.Header().Set("Warning", roleWarning)
					logger.WarnContext(r.Context(), "admitting session with unresolved role",
						slog.String("session_id", session.ID),
						slog.String("user_id", session.User.ID),
						slog.String("path", r.URL.Path))
				}
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth returns a middleware that adds the session to the context when
// present and lets the request through either way.
func OptionalAuth(authSvc SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session := getSessionFromRequest(r, authSvc); session != nil {
				r = r.WithContext(SetSessionInContext(r.Context(), session))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleAllowed(role domainauth.Role, allowed []domainauth.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// getSessionFromRequest retrieves and validates a session from the request.
func getSessionFromRequest(r *http.Request, authSvc SessionResolver) *domainauth.Session {
	sessionCookie, err := r.Cookie("session_id")
	if err != nil {
		return nil
	}

	session, err := authSvc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		return nil
	}

	return session
}

func denyUnauthenticated(w http.ResponseWriter, r *http.Request) {
	if isBrowserRequest(r) {
		redirectToLogin(w, r)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}

func denyForbidden(w http.ResponseWriter, r *http.Request) {
	if isBrowserRequest(r) {
		http.Redirect(w, r, domainauth.RouteUnauthorized, http.StatusSeeOther)
		return
	}
	WriteError(w, ErrorParams{
		Code:    http.StatusForbidden,
		ErrCode: "insufficient_permissions",
		Err:     errors.New("insufficient permissions"),
	})
}

// isBrowserRequest distinguishes page navigations from API calls. API routes
// are always JSON; anything else that prefers text/html is a navigation.
func isBrowserRequest(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return false
	}

	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html")
}

// redirectToLogin redirects page requests to the login endpoint with the
// current URL as redirect_uri.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	redirectPath := safeRedirectPath(r.URL.RequestURI())
	loginURL := "/auth/login?redirect_uri=" + url.QueryEscape(redirectPath)
	http.Redirect(w, r, loginURL, http.StatusSeeOther)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}

// Compression returns a middleware that gzips JSON and text responses when
// the client advertises support. Level follows gzip semantics; out-of-range
// values fall back to the gzip default.
func Compression(level int) func(http.Handler) http.Handler {
	if level < gzip.HuffmanOnly || level > gzip.BestCompression {
		level = gzip.DefaultCompression
	}
	pool := &sync.Pool{New: func() any {
		gz, _ := gzip.NewWriterLevel(nil, level)
		return gz
	}}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodHead || !acceptsGzip(r.Header.Get("Accept-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")
			gzw := &gzipResponseWriter{ResponseWriter: w, pool: pool}
			next.ServeHTTP(gzw, r)
			gzw.close()
		})
	}
}

func acceptsGzip(acceptEncoding string) bool {
	for _, part := range strings.Split(acceptEncoding, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		encoding, params, _ := strings.Cut(part, ";")
		if strings.TrimSpace(encoding) != "gzip" {
			continue
		}
		q := strings.TrimSpace(params)
		if q == "q=0" || strings.HasPrefix(q, "q=0.0") {
			return false
		}
		return true
	}
	return false
}

var compressibleTypes = map[string]bool{
	"application/json": true,
	"text/plain":       true,
	"text/html":        true,
	"image/svg+xml":    true,
}

func isCompressibleContentType(contentType string) bool {
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return compressibleTypes[strings.TrimSpace(strings.ToLower(contentType))]
}

// gzipResponseWriter decides at WriteHeader time whether the response body
// should be compressed.
type gzipResponseWriter struct {
	http.ResponseWriter
	pool          *sync.Pool
	gz            *gzip.Writer
	headerWritten bool
}

func (w *gzipResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.headerWritten = true

	skip := statusCode < 200 ||
		statusCode == http.StatusNoContent ||
		statusCode == http.StatusNotModified ||
		w.Header().Get("Content-Encoding") != "" ||
		!isCompressibleContentType(w.Header().Get("Content-Type"))
	if skip {
		w.ResponseWriter.WriteHeader(statusCode)
		return
	}

	gz, ok := w.pool.Get().(*gzip.Writer)
	if !ok {
		gz = gzip.NewWriter(nil)
	}
	gz.Reset(w.ResponseWriter)
	w.gz = gz
	w.Header().Set("Content-Encoding", "gzip")
	w.Header().Del("Content-Length")
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzipResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", http.DetectContentType(b))
		}
		w.WriteHeader(http.StatusOK)
	}
	if w.gz != nil {
		return w.gz.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *gzipResponseWriter) Flush() {
	if w.gz != nil {
		_ = w.gz.Flush()
	}
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *gzipResponseWriter) close() {
	if w.gz == nil {
		return
	}
	_ = w.gz.Close()
	w.pool.Put(w.gz)
	w.gz = nil
}
