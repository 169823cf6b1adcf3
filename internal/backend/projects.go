package backend

import (
	"context"
	"net/url"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// ListProjects retrieves projects visible to the caller. When opts.MyProjects
// is set only projects the caller owns or belongs to are returned.
func (c *Client) ListProjects(ctx context.Context, token string, opts model.ProjectsListOptions) ([]*model.Project, error) {
	q := url.Values{}
	if opts.MyProjects {
		q.Set("myProjects", "true")
	}

	var out []*model.Project
	if err := c.get(ctx, "/projects", q, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProject retrieves a single project by ID.
func (c *Client) GetProject(ctx context.Context, token, id string) (*model.Project, error) {
	var out model.Project
	if err := c.get(ctx, "/projects/"+url.PathEscape(id), nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProject creates a new project.
func (c *Client) CreateProject(ctx context.Context, token string, req *model.CreateProjectRequest) (*model.Project, error) {
	var out model.Project
	if err := c.post(ctx, "/projects", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProject applies a partial update to a project.
func (c *Client) UpdateProject(ctx context.Context, token, id string, req *model.UpdateProjectRequest) (*model.Project, error) {
	var out model.Project
	if err := c.put(ctx, "/projects/"+url.PathEscape(id), token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProject removes a project.
func (c *Client) DeleteProject(ctx context.Context, token, id string) error {
	return c.delete(ctx, "/projects/"+url.PathEscape(id), token)
}
