package bootstrap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/researchhub/portal-api/config"
	"github.com/researchhub/portal-api/internal/adapters/devauth"
	"github.com/researchhub/portal-api/internal/adapters/oidc"
	redisadapter "github.com/researchhub/portal-api/internal/adapters/redis"
	"github.com/researchhub/portal-api/internal/ports"
	"github.com/researchhub/portal-api/internal/service"
)

// AuthOptions contains configuration for building the auth service.
type AuthOptions struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	// Profiles is the cache shared with the profile service so both read and
	// write the same entries. Constructed from RedisClient when nil.
	Profiles ports.ProfileCache
	Logger   *slog.Logger
}

// BuildAuthService creates the auth service for the configured auth mode.
// Every mode shares the same Redis-backed session store, token mirror, and
// profile cache; only the identity provider differs.
func BuildAuthService(opts AuthOptions) (*service.AuthService, error) {
	if opts.RedisClient == nil {
		return nil, errors.New("auth service requires a redis client")
	}

	provider, err := buildAuthProvider(opts.Auth)
	if err != nil {
		return nil, err
	}

	sessions := redisadapter.NewSessionStoreWithPrefix(opts.RedisClient, "session:")
	tokens := redisadapter.NewTokenMirror(opts.RedisClient, opts.Auth.SessionTTL)
	profiles := opts.Profiles
	if profiles == nil {
		profiles = NewProfileCache(opts.RedisClient, opts.Auth)
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Sessions: sessions,
		State: service.AuthStateOptions{
			Profiles: profiles,
			Tokens:   tokens,
			Logger:   opts.Logger,
		},
	}), nil
}

// NewProfileCache builds the Redis profile cache shared by the auth and
// profile services. The profile blob has no expiry so a returning user keeps
// their chosen role; the user snapshot tracks the session lifetime.
func NewProfileCache(client redis.UniversalClient, cfg config.AuthConfig) *redisadapter.ProfileCache {
	return redisadapter.NewProfileCache(client, cfg.SessionTTL, 0)
}

//nolint:ireturn // provider selection is the point of this function.
func buildAuthProvider(cfg config.AuthConfig) (ports.AuthProvider, error) {
	switch cfg.Mode {
	case config.AuthModeMock:
		prov, err := devauth.NewProvider(devauth.Config{
			UserID:          cfg.DevAuth.UserID,
			Email:           cfg.DevAuth.Email,
			FirstName:       cfg.DevAuth.FirstName,
			LastName:        cfg.DevAuth.LastName,
			Role:            cfg.DevAuth.Role,
			Institution:     cfg.DevAuth.Institution,
			SessionDuration: cfg.SessionTTL,
		})
		if err != nil {
			return nil, fmt.Errorf("create dev auth provider: %w", err)
		}
		return prov, nil

	case config.AuthModeOAuth:
		oauth := cfg.OAuth
		if oauth.DiscoveryURL == "" || oauth.ClientID == "" || oauth.ClientSecret == "" {
			return nil, fmt.Errorf(
				"oauth mode requires discovery URL, client ID, and client secret (discovery_url_empty=%t client_id_empty=%t client_secret_empty=%t)",
				oauth.DiscoveryURL == "", oauth.ClientID == "", oauth.ClientSecret == "",
			)
		}
		prov, err := oidc.NewProvider(oidc.ProviderConfig{
			ClientID:     oauth.ClientID,
			ClientSecret: oauth.ClientSecret,
			RedirectURL:  oauth.RedirectURL,
			Scope:        oauth.Scope,
			DiscoveryURL: oauth.DiscoveryURL,
			LogoutURL:    oauth.LogoutURL,
		})
		if err != nil {
			return nil, fmt.Errorf("create OIDC provider: %w", err)
		}
		return prov, nil

	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Mode)
	}
}
