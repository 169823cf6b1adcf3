package backend

import (
	"context"
	"net/url"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// ListConversations retrieves the caller's conversation summaries, most
// recently active first.
func (c *Client) ListConversations(ctx context.Context, token string) ([]*model.Conversation, error) {
	var out []*model.Conversation
	if err := c.get(ctx, "/messages/conversations", nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListMessages retrieves the message history between the caller and another user.
func (c *Client) ListMessages(ctx context.Context, token, otherUserID string) ([]*model.Message, error) {
	var out []*model.Message
	if err := c.get(ctx, "/messages/"+url.PathEscape(otherUserID), nil, token, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage sends a message to another user.
func (c *Client) SendMessage(ctx context.Context, token string, req *model.SendMessageRequest) (*model.Message, error) {
	var out model.Message
	if err := c.post(ctx, "/messages", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkConversationRead marks every message from the given sender as read.
func (c *Client) MarkConversationRead(ctx context.Context, token, otherUserID string) error {
	return c.put(ctx, "/messages/"+url.PathEscape(otherUserID)+"/read", token, nil, nil)
}
