package config

import (
	"strings"
	"time"
)

// BackendConfig contains the backend REST service configuration. The backend
// owns project/task/message data; the portal attaches the mirrored session
// token to every call it makes there.
type BackendConfig struct {
	// BaseURL is the backend API root, e.g. "http://localhost:3001/api".
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:3001/api"`

	// Timeout bounds each backend request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Sanitize applies guardrails to backend configuration values.
func (b *BackendConfig) Sanitize() {
	b.BaseURL = strings.TrimRight(strings.TrimSpace(b.BaseURL), "/")
	if b.Timeout <= 0 {
		b.Timeout = 15 * time.Second
	}
}
