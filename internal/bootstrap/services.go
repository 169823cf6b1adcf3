package bootstrap

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/researchhub/portal-api/config"
	redisadapter "github.com/researchhub/portal-api/internal/adapters/redis"
	"github.com/researchhub/portal-api/internal/backend"
	"github.com/researchhub/portal-api/internal/data"
	"github.com/researchhub/portal-api/internal/service"
)

// ServiceContainer groups the application services.
type ServiceContainer struct {
	Auth      *service.AuthService
	Profiles  *service.ProfileService
	Projects  *service.ProjectService
	Tasks     *service.TaskService
	Messages  *service.MessageService
	Dashboard *service.DashboardService
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices wires the backend client, data adapters, and domain services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service deps and config are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	client, err := backend.New(backend.Options{
		BaseURL: cfg.Backend.BaseURL,
		Timeout: cfg.Backend.Timeout,
		Logger:  logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create backend client: %w", err)
	}

	// One profile cache instance backs both the auth resolution path and the
	// profile service's read-through cache.
	profileCache := NewProfileCache(deps.RedisClient, cfg.Auth)

	auth, err := BuildAuthService(AuthOptions{
		Auth:        cfg.Auth,
		RedisClient: deps.RedisClient,
		Profiles:    profileCache,
		Logger:      logger,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("build auth service: %w", err)
	}

	listCache := redisadapter.NewListCache(deps.RedisClient)
	proxyCfg := service.ProxyConfig{
		CacheTTL: cfg.Redis.ListCacheTTL,
		Logger:   logger,
	}

	profiles := service.NewProfileService(service.ProfileServiceOptions{
		Store:     data.NewProfileRepo(deps.DB),
		Cache:     profileCache,
		Directory: client,
		Logger:    logger,
	})
	projects := service.NewProjectService(service.ProjectServiceOptions{
		Backend: client,
		Cache:   listCache,
		Config:  proxyCfg,
	})
	tasks := service.NewTaskService(service.TaskServiceOptions{
		Backend: client,
		Cache:   listCache,
		Config:  proxyCfg,
	})
	messages := service.NewMessageService(service.MessageServiceOptions{
		Backend: client,
		Cache:   listCache,
		Config:  proxyCfg,
	})
	dashboard := service.NewDashboardService(service.DashboardServiceOptions{
		Projects: projects,
		Tasks:    tasks,
		Messages: messages,
		Logger:   logger,
	})

	return ServiceContainer{
		Auth:      auth,
		Profiles:  profiles,
		Projects:  projects,
		Tasks:     tasks,
		Messages:  messages,
		Dashboard: dashboard,
	}, nil
}
