package data_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/portal-api/internal/data"
	apperrors "github.com/researchhub/portal-api/internal/errors"
	"github.com/researchhub/portal-api/internal/testutil"
)

func TestProfileRepo_UpsertGetDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := data.NewProfileRepo(db)

	userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
	p := testutil.NewProfile().
		WithUserID(userID).
		WithEmail(userID + "@example.edu").
		Build()

	created, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, userID, created.UserID)
	assert.Equal(t, "researcher", created.Role)
	assert.NotZero(t, created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := repo.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)
	assert.True(t, got.OnboardingComplete)

	deleted, err := repo.Delete(ctx, userID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, userID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestProfileRepo_GetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := data.NewProfileRepo(db)

	_, err := repo.Get(context.Background(), "no-such-user")
	assert.Equal(t, apperrors.ErrCodeNotFound, apperrors.CodeOf(err))
}

func TestProfileRepo_UpsertUpdatesExisting(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	tp := data.NewFixedTimeProvider(testutil.TestTime())
	repo := data.NewProfileRepoWithTimeProvider(db, tp)

	userID := fmt.Sprintf("user-%d", time.Now().UnixNano())
	p := testutil.NewProfile().
		WithUserID(userID).
		WithEmail(userID + "@example.edu").
		WithRole("student").
		Build()

	created, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "student", created.Role)

	tp.AddTime(time.Hour)
	p.Role = "researcher"
	p.Bio = "Now working on graph algorithms"

	updated, err := repo.Upsert(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "researcher", updated.Role)
	assert.Equal(t, "Now working on graph algorithms", updated.Bio)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(updated.CreatedAt))
}

func TestProfileRepo_DuplicateEmailConflict(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := data.NewProfileRepo(db)

	email := fmt.Sprintf("shared-%d@example.edu", time.Now().UnixNano())

	_, err := repo.Upsert(ctx, testutil.NewProfile().WithUserID("dup-a").WithEmail(email).Build())
	require.NoError(t, err)

	_, err = repo.Upsert(ctx, testutil.NewProfile().WithUserID("dup-b").WithEmail(email).Build())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConflict, apperrors.CodeOf(err))
}

func TestProfileRepo_ListByRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := data.NewProfileRepo(db)

	suffix := time.Now().UnixNano()
	for i, role := range []string{"student", "student", "admin"} {
		id := fmt.Sprintf("list-%d-%d", suffix, i)
		_, err := repo.Upsert(ctx, testutil.NewProfile().
			WithUserID(id).
			WithEmail(id+"@example.edu").
			WithRole(role).
			Build())
		require.NoError(t, err)
	}

	students, err := repo.ListByRole(ctx, "student", 10, 0)
	require.NoError(t, err)
	assert.Len(t, students, 2)

	all, err := repo.ListByRole(ctx, "", 10, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestProfileRepo_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()
	repo := data.NewProfileRepo(db)

	_, err := repo.Get(ctx, "")
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	_, err = repo.Upsert(ctx, nil)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))

	p := testutil.NewProfile().WithUserID("u").WithEmail("").Build()
	_, err = repo.Upsert(ctx, p)
	assert.Equal(t, apperrors.ErrCodeValidation, apperrors.CodeOf(err))
}
