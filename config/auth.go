package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses the external identity provider (OAuth/OIDC).
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration for the identity provider.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"researchhub"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"researchhub"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID      string `env:"USER_ID"     envDefault:"dev-user"`
	Email       string `env:"EMAIL"       envDefault:"dev@example.edu"`
	FirstName   string `env:"FIRST_NAME"  envDefault:"Dev"`
	LastName    string `env:"LAST_NAME"   envDefault:"User"`
	Role        string `env:"ROLE"        envDefault:"researcher"`
	Institution string `env:"INSTITUTION" envDefault:""`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// SessionTTL caps session lifetime when the provider does not supply an expiry.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"8h"`

	// LoginRatePerMinute limits login/callback attempts per client IP.
	LoginRatePerMinute int `env:"AUTH_LOGIN_RATE_PER_MINUTE" envDefault:"30"`
}
