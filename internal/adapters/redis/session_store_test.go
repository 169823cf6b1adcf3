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

func testSession(id string, ttl time.Duration) domainauth.Session {
	return domainauth.Session{
		ID: id,
		User: domainauth.User{
			ID:        "user-1",
			Email:     "jordan.rivera@example.edu",
			FirstName: "Jordan",
			LastName:  "Rivera",
			Role:      domainauth.RoleResearcher,
		},
		ExpiresAt: time.Now().Add(ttl),
	}
}

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	sess := testSession("sess-1", time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
	assert.Equal(t, sess.User.ID, got.User.ID)
	assert.Equal(t, domainauth.RoleResearcher, got.User.Role)
}

func TestSessionStore_GetMissing(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_SaveExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	err := store.Save(context.Background(), testSession("sess-1", -time.Minute))
	assert.Error(t, err)
}

func TestSessionStore_SaveEmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)

	sess := testSession("", time.Hour)
	assert.Error(t, store.Save(context.Background(), sess))
}

func TestSessionStore_GetExpiredEntry(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	// Short-lived session whose redis TTL has not fired yet but whose
	// ExpiresAt has passed by read time.
	sess := testSession("sess-1", 50*time.Millisecond)
	require.NoError(t, store.Save(ctx, sess))
	time.Sleep(60 * time.Millisecond)

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, testSession("sess-1", time.Hour)))
	require.NoError(t, store.Delete(ctx, "sess-1"))

	_, err := store.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// Deleting a missing session is not an error.
	assert.NoError(t, store.Delete(ctx, "sess-1"))
}
