package service

import (
	"context"
	"log/slog"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/domain/model"
)

// DashboardServiceOptions groups dependencies for DashboardService.
type DashboardServiceOptions struct {
	Projects *ProjectService
	Tasks    *TaskService
	Messages *MessageService
	Logger   *slog.Logger
}

// DashboardService assembles the landing-page summary by fanning out to the
// section services. A failed section degrades to empty rather than failing
// the whole page.
type DashboardService struct {
	projects *ProjectService
	tasks    *TaskService
	messages *MessageService
	logger   *slog.Logger
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		projects: opts.Projects,
		tasks:    opts.Tasks,
		messages: opts.Messages,
		logger:   logger.With("component", "dashboard_service"),
	}
}

// DashboardSummary is the aggregated landing-page payload. Degraded lists
// the sections that could not be loaded, so the page can label them.
type DashboardSummary struct {
	Projects      []*model.Project      `json:"projects"`
	Tasks         []*model.Task         `json:"tasks"`
	Conversations []*model.Conversation `json:"conversations"`
	Degraded      []string              `json:"degraded,omitempty"`
}

// Summary loads the dashboard sections concurrently. Admins see all
// projects and tasks; everyone else sees their own.
func (s *DashboardService) Summary(ctx context.Context, token, userID string, role domainauth.Role) (*DashboardSummary, error) {
	mine := role != domainauth.RoleAdmin

	out := &DashboardSummary{
		Projects:      []*model.Project{},
		Tasks:         []*model.Task{},
		Conversations: []*model.Conversation{},
	}
	var mu sync.Mutex
	degrade := func(section string, err error) {
		s.logger.WarnContext(ctx, "dashboard section failed", "section", section, "err", err)
		mu.Lock()
		out.Degraded = append(out.Degraded, section)
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		projects, err := s.projects.List(gctx, token, userID, model.ProjectsListOptions{MyProjects: mine})
		if err != nil {
			degrade("projects", err)
			return nil
		}
		mu.Lock()
		out.Projects = projects
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		tasks, err := s.tasks.List(gctx, token, userID, model.TasksListOptions{MyTasks: mine})
		if err != nil {
			degrade("tasks", err)
			return nil
		}
		mu.Lock()
		out.Tasks = tasks
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		convs, err := s.messages.Conversations(gctx, token, userID)
		if err != nil {
			degrade("conversations", err)
			return nil
		}
		mu.Lock()
		out.Conversations = convs
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Strings(out.Degraded)
	return out, nil
}
