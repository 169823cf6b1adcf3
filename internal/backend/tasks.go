package backend

import (
	"context"
	"net/url"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// ListTasks retrieves tasks visible to the caller, optionally scoped to a
// project or to the caller's own assignments.
func (c *Client) ListTasks(ctx context.Context, token string, opts model.TasksListOptions) ([]*model.Task, error) {
	q := url.Values{}
	if opts.ProjectID != "" {
		q.Set("projectId", opts.ProjectID)
	}
	if opts.MyTasks {
		q.Set("myTasks", "true")
	}

	var out []*model.Task
	if err := c.get(ctx, "/tasks", q, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTask retrieves a single task by ID.
func (c *Client) GetTask(ctx context.Context, token, id string) (*model.Task, error) {
	var out model.Task
	if err := c.get(ctx, "/tasks/"+url.PathEscape(id), nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateTask creates a new task.
func (c *Client) CreateTask(ctx context.Context, token string, req *model.CreateTaskRequest) (*model.Task, error) {
	var out model.Task
	if err := c.post(ctx, "/tasks", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, token, id string, req *model.UpdateTaskRequest) (*model.Task, error) {
	var out model.Task
	if err := c.put(ctx, "/tasks/"+url.PathEscape(id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, token, id string) error {
	return c.delete(ctx, "/tasks/"+url.PathEscape(id), token)
}
