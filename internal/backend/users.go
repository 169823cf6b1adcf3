package backend

import (
	"context"
	"net/url"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// GetUserProfile retrieves another user's public profile.
func (c *Client) GetUserProfile(ctx context.Context, token, userID string) (*model.Profile, error) {
	var out model.Profile
	if err := c.get(ctx, "/users/"+url.PathEscape(userID)+"/profile", nil, token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListUsers retrieves the user directory for pickers (message recipients,
// task assignees).
func (c *Client) ListUsers(ctx context.Context, token string) ([]*model.Profile, error) {
	var out []*model.Profile
	if err := c.get(ctx, "/users", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}
