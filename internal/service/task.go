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

// taskBackend is the minimal backend surface the task service needs.
type taskBackend interface {
	ListTasks(ctx context.Context, token string, opts model.TasksListOptions) ([]*model.Task, error)
	GetTask(ctx context.Context, token, id string) (*model.Task, error)
	CreateTask(ctx context.Context, token string, req *model.CreateTaskRequest) (*model.Task, error)
	UpdateTask(ctx context.Context, token, id string, req *model.UpdateTaskRequest) (*model.Task, error)
	DeleteTask(ctx context.Context, token, id string) error
}

// TaskServiceOptions groups dependencies for TaskService.
type TaskServiceOptions struct {
	Backend taskBackend
	Cache   ports.ListCache
	Config  ProxyConfig
}

// TaskService proxies task CRUD to the backend with the same cache fallback
// behavior as projects.
type TaskService struct {
	backend  taskBackend
	cache    ports.ListCache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewTaskService constructs a new TaskService.
func NewTaskService(opts TaskServiceOptions) *TaskService {
	logger := opts.Config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ttl := opts.Config.CacheTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TaskService{
		backend:  opts.Backend,
		cache:    opts.Cache,
		cacheTTL: ttl,
		logger:   logger.With("component", "task_service"),
	}
}

func tasksCacheKey(userID string, opts model.TasksListOptions) string {
	return fmt.Sprintf("%s:tasks:project=%s:my=%t", userID, opts.ProjectID, opts.MyTasks)
}

// List retrieves tasks for the caller, applying an optional filter
// expression. Backend failures fall back to the last cached list.
func (s *TaskService) List(ctx context.Context, token, userID string, opts model.TasksListOptions) ([]*model.Task, error) {
	if err := ValidateFilter(opts.Filter); err != nil {
		return nil, apperrors.ValidationField("filter", err.Error())
	}

	key := tasksCacheKey(userID, opts)

	tasks, err := s.backend.ListTasks(ctx, token, opts)
	if err != nil {
		cached, ok := s.fromCache(ctx, key)
		if !ok {
			return nil, err
		}
		s.logger.WarnContext(ctx, "serving tasks from cache", "user_id", userID, "err", err)
		return filterList(cached, opts.Filter)
	}

	s.toCache(ctx, key, tasks)
	return filterList(tasks, opts.Filter)
}

// Get retrieves one task.
func (s *TaskService) Get(ctx context.Context, token, id string) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.Validation("task ID is required")
	}
	return s.backend.GetTask(ctx, token, id)
}

// Create creates a task.
func (s *TaskService) Create(ctx context.Context, token string, req *model.CreateTaskRequest) (*model.Task, error) {
	if req == nil {
		return nil, apperrors.Validation("create task request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.backend.CreateTask(ctx, token, req)
}

// Update applies a partial update to a task.
func (s *TaskService) Update(ctx context.Context, token, id string, req *model.UpdateTaskRequest) (*model.Task, error) {
	if id == "" {
		return nil, apperrors.Validation("task ID is required")
	}
	if req == nil {
		return nil, apperrors.Validation("update task request is required")
	}
	return s.backend.UpdateTask(ctx, token, id, req)
}

// Delete removes a task.
func (s *TaskService) Delete(ctx context.Context, token, id string) error {
	if id == "" {
		return apperrors.Validation("task ID is required")
	}
	return s.backend.DeleteTask(ctx, token, id)
}

func (s *TaskService) fromCache(ctx context.Context, key string) ([]*model.Task, bool) {
	raw, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "list cache read failed", "key", key, "err", err)
		return nil, false
	}
	if raw == nil {
		return nil, false
	}
	var out []*model.Task
	if unmarshalErr := json.Unmarshal(raw, &out); unmarshalErr != nil {
		if _, delErr := s.cache.Delete(ctx, key); delErr != nil {
			s.logger.WarnContext(ctx, "failed to drop corrupt cache entry", "key", key, "err", delErr)
		}
		return nil, false
	}
	return out, true
}

func (s *TaskService) toCache(ctx context.Context, key string, tasks []*model.Task) {
	raw, err := json.Marshal(tasks)
	if err != nil {
		return
	}
	if setErr := s.cache.Set(ctx, key, raw, s.cacheTTL); setErr != nil {
		s.logger.WarnContext(ctx, "list cache write failed", "key", key, "err", setErr)
	}
}
