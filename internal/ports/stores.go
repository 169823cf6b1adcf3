package ports

import (
	"context"
	"time"

	"github.com/researchhub/portal-api/internal/domain/model"
)

// ProfileStore is the authoritative store for onboarding-collected profiles.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error)
	Delete(ctx context.Context, userID string) (bool, error)
	// ListByRole returns profiles with the given role, newest first. An empty
	// role matches all profiles.
	ListByRole(ctx context.Context, role string, limit, offset int) ([]*model.Profile, error)
}

// ListCache caches serialized list payloads (projects, tasks, conversations,
// per-conversation messages) so pages can degrade to recent data when the
// backend is unavailable. Last write wins; no merge.
type ListCache interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns nil with no error when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
}
