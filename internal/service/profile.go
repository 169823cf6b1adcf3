package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/researchhub/portal-api/internal/domain/auth"
	"github.com/researchhub/portal-api/internal/domain/model"
	apperrors "github.com/researchhub/portal-api/internal/errors"
	"github.com/researchhub/portal-api/internal/ports"
)

// profileDirectory is the minimal backend surface the profile service needs
// for looking up other users.
type profileDirectory interface {
	GetUserProfile(ctx context.Context, token, userID string) (*model.Profile, error)
	ListUsers(ctx context.Context, token string) ([]*model.Profile, error)
}

// ProfileServiceOptions groups dependencies for ProfileService.
type ProfileServiceOptions struct {
	Store     ports.ProfileStore
	Cache     ports.ProfileCache
	Directory profileDirectory
	Logger    *slog.Logger
}

// ProfileService owns the authoritative profile record. The local store is
// the source of truth for onboarding-collected data; the Redis entry is a
// read-through cache refreshed on every authoritative fetch and write.
type ProfileService struct {
	store     ports.ProfileStore
	cache     ports.ProfileCache
	directory profileDirectory
	logger    *slog.Logger
}

// NewProfileService constructs a new ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		store:     opts.Store,
		cache:     opts.Cache,
		directory: opts.Directory,
		logger:    logger.With("component", "profile_service"),
	}
}

// Get returns the caller's own profile from the authoritative store and
// refreshes the cache entry from it.
func (s *ProfileService) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.Validation("user ID is required")
	}

	p, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	s.refreshCache(ctx, p)
	return p, nil
}

// CompleteOnboardingInput groups the session user with the onboarding form.
type CompleteOnboardingInput struct {
	User    domainauth.User
	Email   string
	Request *model.UpsertProfileRequest
}

// CompleteOnboarding persists the onboarding form as the authoritative
// profile and refreshes the cache. The returned profile carries the selected
// role; the caller is responsible for updating the session.
func (s *ProfileService) CompleteOnboarding(ctx context.Context, in CompleteOnboardingInput) (*model.Profile, error) {
	if in.User.ID == "" {
		return nil, apperrors.Unauthorized("no resolved user")
	}
	if in.Request == nil {
		return nil, apperrors.Validation("onboarding request is required")
	}
	if err := in.Request.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if !domainauth.ParseRole(in.Request.Role).IsSet() {
		return nil, apperrors.ValidationField("role", "unknown role")
	}

	email := in.Email
	if email == "" {
		email = in.User.Email
	}

	p, err := s.store.Upsert(ctx, &model.Profile{
		UserID:             in.User.ID,
		Email:              email,
		FirstName:          in.User.FirstName,
		LastName:           in.User.LastName,
		Role:               in.Request.Role,
		Institution:        in.Request.Institution,
		Department:         in.Request.Department,
		Bio:                in.Request.Bio,
		OnboardingComplete: true,
	})
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	s.refreshCache(ctx, p)
	return p, nil
}

// Update applies profile edits for a user that has already onboarded.
func (s *ProfileService) Update(ctx context.Context, userID string, req *model.UpsertProfileRequest) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.Validation("user ID is required")
	}
	if req == nil {
		return nil, apperrors.Validation("profile request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	existing, err := s.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	existing.Role = req.Role
	existing.Institution = req.Institution
	existing.Department = req.Department
	existing.Bio = req.Bio

	p, err := s.store.Upsert(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	s.refreshCache(ctx, p)
	return p, nil
}

// GetUser looks up another user's public profile via the backend directory.
func (s *ProfileService) GetUser(ctx context.Context, token, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.Validation("user ID is required")
	}
	return s.directory.GetUserProfile(ctx, token, userID)
}

// ListUsers returns the user directory for pickers.
func (s *ProfileService) ListUsers(ctx context.Context, token string) ([]*model.Profile, error) {
	return s.directory.ListUsers(ctx, token)
}

// ListByRole returns local profiles filtered by role, for the admin directory.
func (s *ProfileService) ListByRole(ctx context.Context, role string, limit, offset int) ([]*model.Profile, error) {
	if role != "" && !domainauth.ParseRole(role).IsSet() {
		return nil, apperrors.ValidationField("role", "unknown role")
	}
	return s.store.ListByRole(ctx, role, limit, offset)
}

// refreshCache writes the cached-profile projection of an authoritative
// record. Cache failures are logged and swallowed.
func (s *ProfileService) refreshCache(ctx context.Context, p *model.Profile) {
	err := s.cache.SaveProfile(ctx, p.UserID, domainauth.CachedProfile{
		Role:        p.Role,
		Institution: p.Institution,
		Department:  p.Department,
		Bio:         p.Bio,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.WarnContext(ctx, "failed to refresh profile cache", "user_id", p.UserID, "err", err)
	}
}
