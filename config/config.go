package config

import (
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Authentication configuration
//   - backend.go: Backend REST service configuration
//   - database.go: Database and cache configuration
//   - http.go: HTTP server configuration
type AppConfig struct {
	// IsDev controls development mode behavior: when no identity provider is
	// configured, auth falls back to the mock provider.
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// Backend REST service configuration
	Backend BackendConfig `envPrefix:"BACKEND_"`

	// Database configuration
	Postgres DBConfig    `envPrefix:"DB_"`
	Redis    RedisConfig `envPrefix:"REDIS_"`

	// HTTP server configuration
	HTTP HTTPConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.HTTP.Sanitize()
	c.Backend.Sanitize()
	c.detectDevMode()
	c.applyDevAuthDefault()
}

// applyDevAuthDefault falls back to mock auth in dev mode when oauth is
// selected but no identity provider is configured. Production startup still
// fails loudly on the same gap.
func (c *AppConfig) applyDevAuthDefault() {
	if c.IsDev && c.Auth.Mode == AuthModeOAuth && c.Auth.OAuth.DiscoveryURL == "" {
		c.Auth.Mode = AuthModeMock
	}
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
