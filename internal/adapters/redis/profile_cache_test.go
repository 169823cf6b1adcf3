package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/ports"
	"github.com/researchhub/portal-api/internal/testutil"
)

func TestProfileCache_UserRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewProfileCache(client, time.Hour, 0)
	ctx := context.Background()

	user := domainauth.User{
		ID:        "user-1",
		Email:     "jordan.rivera@example.edu",
		FirstName: "Jordan",
		Role:      domainauth.RoleAdmin,
	}
	require.NoError(t, cache.SaveUser(ctx, user))

	got, err := cache.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, user, got)

	require.NoError(t, cache.DeleteUser(ctx, "user-1"))
	_, err = cache.GetUser(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProfileCache_ProfileRoundTrip(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewProfileCache(client, time.Hour, 0)
	ctx := context.Background()

	p := domainauth.CachedProfile{
		Role:        "student",
		Institution: "Example University",
		Department:  "Physics",
	}
	require.NoError(t, cache.SaveProfile(ctx, "user-1", p))

	got, err := cache.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestProfileCache_ProfileSurvivesUserDelete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewProfileCache(client, time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, cache.SaveUser(ctx, domainauth.User{ID: "user-1"}))
	require.NoError(t, cache.SaveProfile(ctx, "user-1", domainauth.CachedProfile{Role: "admin"}))

	require.NoError(t, cache.DeleteUser(ctx, "user-1"))

	got, err := cache.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", got.Role)
}

func TestProfileCache_MalformedProfileRemoved(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewProfileCache(client, time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "userProfile:user-1", "{not json", 0).Err())

	_, err := cache.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrMalformed)

	// The corrupt entry is gone; the next read reports a clean miss.
	_, err = cache.GetProfile(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProfileCache_MalformedUserRemoved(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewProfileCache(client, time.Hour, 0)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "user:user-1", "][", 0).Err())

	_, err := cache.GetUser(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrMalformed)

	_, err = cache.GetUser(ctx, "user-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestProfileCache_EmptyIDs(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	cache := NewProfileCache(client, time.Hour, 0)
	ctx := context.Background()

	assert.Error(t, cache.SaveUser(ctx, domainauth.User{}))
	assert.Error(t, cache.SaveProfile(ctx, "", domainauth.CachedProfile{}))

	_, err := cache.GetUser(ctx, "")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	_, err = cache.GetProfile(ctx, "")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
