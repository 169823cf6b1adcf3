package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	var m AuthMode
	require.NoError(t, m.UnmarshalText([]byte("OAuth")))
	assert.Equal(t, AuthModeOAuth, m)

	require.NoError(t, m.UnmarshalText([]byte("mock")))
	assert.Equal(t, AuthModeMock, m)

	err := m.UnmarshalText([]byte("saml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid AuthMode")
}

func TestHTTPConfig_SanitizeClampsCompressionLevel(t *testing.T) {
	h := HTTPConfig{CompressionLevel: 0}
	h.Sanitize()
	assert.Equal(t, 1, h.CompressionLevel)

	h = HTTPConfig{CompressionLevel: 42}
	h.Sanitize()
	assert.Equal(t, 9, h.CompressionLevel)
}

func TestBackendConfig_Sanitize(t *testing.T) {
	b := BackendConfig{BaseURL: " http://localhost:3001/api/ ", Timeout: -1}
	b.Sanitize()
	assert.Equal(t, "http://localhost:3001/api", b.BaseURL)
	assert.Equal(t, 15*time.Second, b.Timeout)
}

func TestAppConfig_DetectDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	var c AppConfig
	c.Sanitize()
	assert.True(t, c.IsDev)
}

func TestAppConfig_DevModeDefaultsToMockAuth(t *testing.T) {
	c := AppConfig{IsDev: true, Auth: AuthConfig{Mode: AuthModeOAuth}}
	c.Sanitize()
	assert.Equal(t, AuthModeMock, c.Auth.Mode)
}

func TestAppConfig_DevModeKeepsConfiguredProvider(t *testing.T) {
	c := AppConfig{
		IsDev: true,
		Auth: AuthConfig{
			Mode:  AuthModeOAuth,
			OAuth: OAuthConfig{DiscoveryURL: "https://idp.example.edu/.well-known/openid-configuration"},
		},
	}
	c.Sanitize()
	assert.Equal(t, AuthModeOAuth, c.Auth.Mode)

	t.Setenv("NODE_ENV", "")
	prod := AppConfig{Auth: AuthConfig{Mode: AuthModeOAuth}}
	prod.Sanitize()
	assert.Equal(t, AuthModeOAuth, prod.Auth.Mode)
}
