package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/portal-api/internal/domain/model"
	apperrors "github.com/researchhub/portal-api/internal/errors"
	mocksauth "github.com/researchhub/portal-api/internal/mocks/auth"
	"github.com/researchhub/portal-api/internal/testutil"
)

// stubProjectBackend implements projectBackend with function fields.
type stubProjectBackend struct {
	listFunc   func(ctx context.Context, token string, opts model.ProjectsListOptions) ([]*model.Project, error)
	createFunc func(ctx context.Context, token string, req *model.CreateProjectRequest) (*model.Project, error)
}

func (s *stubProjectBackend) ListProjects(ctx context.Context, token string, opts model.ProjectsListOptions) ([]*model.Project, error) {
	return s.listFunc(ctx, token, opts)
}

func (s *stubProjectBackend) GetProject(context.Context, string, string) (*model.Project, error) {
	return &model.Project{ID: "p1"}, nil
}

func (s *stubProjectBackend) CreateProject(ctx context.Context, token string, req *model.CreateProjectRequest) (*model.Project, error) {
	return s.createFunc(ctx, token, req)
}

func (s *stubProjectBackend) UpdateProject(context.Context, string, string, *model.UpdateProjectRequest) (*model.Project, error) {
	return &model.Project{ID: "p1"}, nil
}

func (s *stubProjectBackend) DeleteProject(context.Context, string, string) error {
	return nil
}

func sampleProjects() []*model.Project {
	return []*model.Project{
		{ID: "p1", Title: "Protein Folding", Status: model.ProjectStatusActive, Priority: model.PriorityHigh},
		{ID: "p2", Title: "Graph Algorithms", Status: model.ProjectStatusPlanning, Priority: model.PriorityLow},
	}
}

func TestProjectService_ListCachesResult(t *testing.T) {
	cache := mocksauth.NewMemoryListCache()
	backend := &stubProjectBackend{
		listFunc: func(context.Context, string, model.ProjectsListOptions) ([]*model.Project, error) {
			return sampleProjects(), nil
		},
	}
	svc := NewProjectService(ProjectServiceOptions{Backend: backend, Cache: cache})
	ctx := context.Background()

	projects, err := svc.List(ctx, "tok", "user-1", model.ProjectsListOptions{})
	require.NoError(t, err)
	assert.Len(t, projects, 2)

	raw, err := cache.Get(ctx, projectsCacheKey("user-1", false))
	require.NoError(t, err)
	assert.NotNil(t, raw)
}

func TestProjectService_ListFallsBackToCache(t *testing.T) {
	cache := mocksauth.NewMemoryListCache()
	healthy := true
	backend := &stubProjectBackend{
		listFunc: func(context.Context, string, model.ProjectsListOptions) ([]*model.Project, error) {
			if !healthy {
				return nil, apperrors.Upstream("backend unreachable", nil)
			}
			return sampleProjects(), nil
		},
	}
	svc := NewProjectService(ProjectServiceOptions{Backend: backend, Cache: cache})
	ctx := context.Background()

	_, err := svc.List(ctx, "tok", "user-1", model.ProjectsListOptions{})
	require.NoError(t, err)

	healthy = false
	projects, err := svc.List(ctx, "tok", "user-1", model.ProjectsListOptions{})
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestProjectService_ListNoCacheReturnsError(t *testing.T) {
	backend := &stubProjectBackend{
		listFunc: func(context.Context, string, model.ProjectsListOptions) ([]*model.Project, error) {
			return nil, apperrors.Upstream("backend unreachable", nil)
		},
	}
	svc := NewProjectService(ProjectServiceOptions{Backend: backend, Cache: mocksauth.NewMemoryListCache()})

	_, err := svc.List(context.Background(), "tok", "user-1", model.ProjectsListOptions{})
	assert.Equal(t, apperrors.ErrCodeUpstream, apperrors.CodeOf(err))
}

func TestProjectService_ListFilter(t *testing.T) {
	backend := &stubProjectBackend{
		listFunc: func(context.Context, string, model.ProjectsListOptions) ([]*model.Project, error) {
			return sampleProjects(), nil
		},
	}
	svc := NewProjectService(ProjectServiceOptions{Backend: backend, Cache: mocksauth.NewMemoryListCache()})

	projects, err := svc.List(context.Background(), "tok", "user-1", model.ProjectsListOptions{
		Filter: `[?status == 'active']`,
	})
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "p1", projects[0].ID)
}

func TestProjectService_ListBadFilter(t *testing.T) {
	backend := &stubProjectBackend{
		listFunc: func(context.Context, string, model.ProjectsListOptions) ([]*model.Project, error) {
			return sampleProjects(), nil
		},
	}
	svc := NewProjectService(ProjectServiceOptions{Backend: backend, Cache: mocksauth.NewMemoryListCache()})

	_, err := svc.List(context.Background(), "tok", "user-1", model.ProjectsListOptions{Filter: "[?status =="})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}

func TestProjectService_CreateInvalidatesCache(t *testing.T) {
	cache := mocksauth.NewMemoryListCache()
	backend := &stubProjectBackend{
		listFunc: func(context.Context, string, model.ProjectsListOptions) ([]*model.Project, error) {
			return sampleProjects(), nil
		},
		createFunc: func(_ context.Context, _ string, req *model.CreateProjectRequest) (*model.Project, error) {
			return &model.Project{ID: "p3", Title: req.Title}, nil
		},
	}
	svc := NewProjectService(ProjectServiceOptions{Backend: backend, Cache: cache})
	ctx := context.Background()

	_, err := svc.List(ctx, "tok", "user-1", model.ProjectsListOptions{})
	require.NoError(t, err)

	req := testutil.NewProjectRequest().WithTitle("Coral bleaching field study").Build()
	_, err = svc.Create(ctx, "tok", "user-1", req)
	require.NoError(t, err)

	raw, err := cache.Get(ctx, projectsCacheKey("user-1", false))
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestProjectService_CreateValidation(t *testing.T) {
	svc := NewProjectService(ProjectServiceOptions{
		Backend: &stubProjectBackend{},
		Cache:   mocksauth.NewMemoryListCache(),
	})
	ctx := context.Background()

	_, err := svc.Create(ctx, "tok", "user-1", nil)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.Create(ctx, "tok", "user-1", &model.CreateProjectRequest{})
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = svc.Get(ctx, "tok", "")
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}
