package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/researchhub/portal-api/internal/domain/model"
	apperrors "github.com/researchhub/portal-api/internal/errors"
	"github.com/researchhub/portal-api/internal/ports"
)

// projectBackend is the minimal backend surface the project service needs.
type projectBackend interface {
	ListProjects(ctx context.Context, token string, opts model.ProjectsListOptions) ([]*model.Project, error)
	GetProject(ctx context.Context, token, id string) (*model.Project, error)
	CreateProject(ctx context.Context, token string, req *model.CreateProjectRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, token, id string, req *model.UpdateProjectRequest) (*model.Project, error)
	DeleteProject(ctx context.Context, token, id string) error
}

// ProxyConfig groups cache behavior shared by the backend proxy services.
type ProxyConfig struct {
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// ProjectServiceOptions groups dependencies for ProjectService.
type ProjectServiceOptions struct {
	Backend projectBackend
	Cache   ports.ListCache
	Config  ProxyConfig
}

// ProjectService proxies project CRUD to the backend and keeps a per-user
// list cache so project pages degrade to recent data when the backend is
// unavailable.
type ProjectService struct {
	backend  projectBackend
	cache    ports.ListCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewProjectService constructs a new ProjectService.
func NewProjectService(opts ProjectServiceOptions) *ProjectService {
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.Config.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &ProjectService{
		backend:  opts.Backend,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   logger.With("component", "project_service"),
	}
}

func projectsCacheKey(userID string, myProjects bool) string {
	return fmt.Sprintf("%s:projects:my=%t", userID, myProjects)
}

// List retrieves projects for the caller, applying an optional filter
// expression. Backend failures fall back to the last cached list.
func (s *ProjectService) List(ctx context.Context, token, userID string, opts model.ProjectsListOptions) ([]*model.Project, error) {
	if err := ValidateFilter(opts.Filter); err != nil {
		return nil, apperrors.ValidationField("filter", err.Error())
	}

	key := projectsCacheKey(userID, opts.MyProjects)

	projects, err := s.backend.ListProjects(ctx, token, opts)
	if err != nil {
		cached, ok := s.fromCache(ctx, key)
		if !ok {
			return nil, err
		}
		s.logger.WarnContext(ctx, "serving projects from cache", "user_id", userID, "err", err)
		return filterList(cached, opts.Filter)
	}

	s.toCache(ctx, key, projects)
	return filterList(projects, opts.Filter)
}

// Get retrieves one project.
func (s *ProjectService) Get(ctx context.Context, token, id string) (*model.Project, error) {
	if id == "" {
		return nil, apperrors.Validation("project ID is required")
	}
	return s.backend.GetProject(ctx, token, id)
}

// Create creates a project and invalidates the caller's list caches.
func (s *ProjectService) Create(ctx context.Context, token, userID string, req *model.CreateProjectRequest) (*model.Project, error) {
	if req == nil {
		return nil, apperrors.Validation("create project request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	p, err := s.backend.CreateProject(ctx, token, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return p, nil
}

// Update applies a partial update and invalidates the caller's list caches.
func (s *ProjectService) Update(ctx context.Context, token, userID, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	if id == "" {
		return nil, apperrors.Validation("project ID is required")
	}
	if req == nil {
		return nil, apperrors.Validation("update project request is required")
	}

	p, err := s.backend.UpdateProject(ctx, token, id, req)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return p, nil
}

// Delete removes a project and invalidates the caller's list caches.
func (s *ProjectService) Delete(ctx context.Context, token, userID, id string) error {
	if id == "" {
		return apperrors.Validation("project ID is required")
	}
	if err := s.backend.DeleteProject(ctx, token, id); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *ProjectService) fromCache(ctx context.Context, key string) ([]*model.Project, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "list cache read failed", "key", key, "err", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var out []*model.Project
	if unmarshalErr := json.Unmarshal(raw, &out); unmarshalErr != nil {
		if _, delErr := s.cache.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to drop corrupt cache entry", "key", key, "err", delErr)
		}
		return nil, false
	}
	return out, true
}

func (s *ProjectService) toCache(ctx context.Context, key string, projects []*model.Project) {
	raw, err := json.Marshal(projects)
	if err != nil {
		return
	}
	if setErr := s.cache.Set(ctx, key, raw, s.cacheTTL); setErr != nil {
		s.logger.WarnContext(ctx, "list cache write failed", "key", key, "err", setErr)
	}
}

func (s *ProjectService) invalidate(ctx context.Context, userID string) {
	for _, my := range []bool{true, false} {
		if _, err := s.cache.Delete(ctx, projectsCacheKey(userID, my)); err != nil {
			s.logger.WarnContext(ctx, "list cache invalidation failed", "user_id", userID, "err", err)
		}
	}
}
