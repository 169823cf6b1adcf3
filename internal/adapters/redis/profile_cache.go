package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/ports"
	"github.com/redis/go-redis/v9"
)

// ProfileCache stores the two per-user entries the resolution path reads:
// the resolved user snapshot (cleared on sign-out) and the
// onboarding-collected profile blob (retained across sign-out so a returning
// user keeps their chosen role).
type ProfileCache struct {
	client     redis.UniversalClient
	userTTL    time.Duration
	profileTTL time.Duration
}

// NewProfileCache creates a Redis-backed profile cache. userTTL bounds the
// user snapshot; profileTTL bounds the profile blob and is typically much
// longer. A zero TTL means no expiry.
func NewProfileCache(client redis.UniversalClient, userTTL, profileTTL time.Duration) *ProfileCache {
	return &ProfileCache{
		client:     client,
		userTTL:    userTTL,
		profileTTL: profileTTL,
	}
}

func userKey(userID string) string    { return "user:" + userID }
func profileKey(userID string) string { return "userProfile:" + userID }

func (c *ProfileCache) SaveUser(ctx context.Context, user domainauth.User) error {
	if user.ID == "" {
		return errors.New("user ID cannot be empty")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return c.client.Set(ctx, userKey(user.ID), data, c.userTTL).Err()
}

func (c *ProfileCache) GetUser(ctx context.Context, userID string) (domainauth.User, error) {
	if userID == "" {
		return domainauth.User{}, ports.ErrNotFound
	}
	data, err := c.client.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.User{}, ports.ErrNotFound
		}
		return domainauth.User{}, fmt.Errorf("redis get: %w", err)
	}
	var user domainauth.User
	if unmarshalErr := json.Unmarshal([]byte(data), &user); unmarshalErr != nil {
		// Remove the corrupt entry so the next read starts clean.
		_ = c.client.Del(ctx, userKey(userID)).Err()
		return domainauth.User{}, ports.ErrMalformed
	}
	return user, nil
}

func (c *ProfileCache) DeleteUser(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return c.client.Del(ctx, userKey(userID)).Err()
}

func (c *ProfileCache) SaveProfile(ctx context.Context, userID string, p domainauth.CachedProfile) error {
	if userID == "" {
		return errors.New("user ID cannot be empty")
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.client.Set(ctx, profileKey(userID), data, c.profileTTL).Err()
}

func (c *ProfileCache) GetProfile(ctx context.Context, userID string) (domainauth.CachedProfile, error) {
	if userID == "" {
		return domainauth.CachedProfile{}, ports.ErrNotFound
	}
	data, err := c.client.Get(ctx, profileKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domainauth.CachedProfile{}, ports.ErrNotFound
		}
		return domainauth.CachedProfile{}, fmt.Errorf("redis get: %w", err)
	}
	var p domainauth.CachedProfile
	if unmarshalErr := json.Unmarshal([]byte(data), &p); unmarshalErr != nil {
		_ = c.client.Del(ctx, profileKey(userID)).Err()
		return domainauth.CachedProfile{}, ports.ErrMalformed
	}
	return p, nil
}

func (c *ProfileCache) DeleteProfile(ctx context.Context, userID string) error {
	if userID == "" {
		return nil
	}
	return c.client.Del(ctx, profileKey(userID)).Err()
}
