package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// TaskServiceInterface defines the task operations the handlers need.
type TaskServiceInterface interface {
	List(ctx context.Context, token, userID string, opts model.TasksListOptions) ([]*model.Task, error)
	Get(ctx context.Context, token, id string) (*model.Task, error)
	Create(ctx context.Context, token string, req *model.CreateTaskRequest) (*model.Task, error)
	Update(ctx context.Context, token, id string, req *model.UpdateTaskRequest) (*model.Task, error)
	Delete(ctx context.Context, token, id string) error
}

// TaskHandlers provides HTTP handlers for task operations.
type TaskHandlers struct {
	Svc    TaskServiceInterface
	Tokens TokenSource
}

// List handles GET /api/tasks?project_id=<id>&my_tasks=true&filter=<jmespath>.
func (h *TaskHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := model.TasksListOptions{
		ProjectID: r.URL.Query().Get("project_id"),
		MyTasks:   r.URL.Query().Get("my_tasks") == "true",
		Filter:    r.URL.Query().Get("filter"),
	}

	tasks, err := h.Svc.List(r.Context(), requestToken(r, h.Tokens), requestUserID(r), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, tasks)
}

// GetByID handles GET /api/tasks/{id}.
func (h *TaskHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	task, err := h.Svc.Get(r.Context(), requestToken(r, h.Tokens), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

// Create handles POST /api/tasks.
func (h *TaskHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTaskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	task, err := h.Svc.Create(r.Context(), requestToken(r, h.Tokens), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, task)
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandlers) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTaskRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	task, err := h.Svc.Update(r.Context(), requestToken(r, h.Tokens), r.PathValue("id"), &req)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "missing_id",
			Err:     errors.New("task ID is required"),
		})
		return
	}

	if err := h.Svc.Delete(r.Context(), requestToken(r, h.Tokens), id); err != nil {
		WriteAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
