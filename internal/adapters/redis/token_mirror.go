package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/researchhub/portal-api/internal/ports"
	"github.com/redis/go-redis/v9"
)

// TokenMirror keeps a copy of the access token issued at login, keyed by
// session ID. The mirror lives and dies with the session and is cleared on
// sign-out; the provider stays authoritative for the token itself.
type TokenMirror struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewTokenMirror creates a Redis-backed token mirror whose entries expire
// after ttl.
func NewTokenMirror(client redis.UniversalClient, ttl time.Duration) *TokenMirror {
	return &TokenMirror{
		client: client,
		prefix: "token:",
		ttl:    ttl,
	}
}

func (m *TokenMirror) Save(ctx context.Context, sessionID, token string) error {
	if sessionID == "" {
		return errors.New("session ID cannot be empty")
	}
	return m.client.Set(ctx, m.prefix+sessionID, token, m.ttl).Err()
}

func (m *TokenMirror) Get(ctx context.Context, sessionID string) (string, error) {
	if sessionID == "" {
		return "", ports.ErrNotFound
	}
	token, err := m.client.Get(ctx, m.prefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ports.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return token, nil
}

func (m *TokenMirror) Delete(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return m.client.Del(ctx, m.prefix+sessionID).Err()
}
