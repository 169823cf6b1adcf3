package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/researchhub/portal-api/internal/data/pgxutil"
	"github.com/researchhub/portal-api/internal/domain/model"
	apperrors "github.com/researchhub/portal-api/internal/errors"
)

const profileColumns = `user_id, email, first_name, last_name, role, institution, department, bio, onboarding_complete, created_at, updated_at`

// ProfileRepo provides database operations for user profiles.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo with real time provider.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProfileRepoWithTimeProvider creates a new ProfileRepo with a custom time provider (useful for tests).
func NewProfileRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: tp}
}

// Get retrieves a profile by user ID.
func (r *ProfileRepo) Get(ctx context.Context, userID string) (*model.Profile, error) {
	if userID == "" {
		return nil, apperrors.Validation("user ID is required")
	}

	var out model.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+profileColumns+`
			FROM profiles
			WHERE user_id = $1
		`, userID)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("profile not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Upsert inserts or updates a profile keyed by user ID. Created/updated
// timestamps come from the repo's time provider so tests can pin them.
func (r *ProfileRepo) Upsert(ctx context.Context, p *model.Profile) (*model.Profile, error) {
	if p == nil {
		return nil, apperrors.Validation("profile is required")
	}
	if p.UserID == "" {
		return nil, apperrors.Validation("user ID is required")
	}
	if p.Email == "" {
		return nil, apperrors.ValidationField("email", "email is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO profiles (
				user_id, email, first_name, last_name, role, institution, department, bio, onboarding_complete, created_at, updated_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10
			)
			ON CONFLICT (user_id) DO UPDATE SET
				email = EXCLUDED.email,
				first_name = EXCLUDED.first_name,
				last_name = EXCLUDED.last_name,
				role = EXCLUDED.role,
				institution = EXCLUDED.institution,
				department = EXCLUDED.department,
				bio = EXCLUDED.bio,
				onboarding_complete = EXCLUDED.onboarding_complete,
				updated_at = EXCLUDED.updated_at
			RETURNING `+profileColumns+`
		`,
			p.UserID,
			p.Email,
			p.FirstName,
			p.LastName,
			p.Role,
			p.Institution,
			p.Department,
			p.Bio,
			p.OnboardingComplete,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Profile])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return &out, nil
}

// Delete removes a profile. Returns false when no row existed.
func (r *ProfileRepo) Delete(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, apperrors.Validation("user ID is required")
	}

	res, err := r.DB.ExecContext(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.MapDBError(err)
	}
	return n > 0, nil
}

// ListByRole retrieves profiles with a given role, newest first. Used by the
// admin user directory.
func (r *ProfileRepo) ListByRole(ctx context.Context, role string, limit, offset int) ([]*model.Profile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Profile
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT `+profileColumns+`
			FROM profiles
			WHERE ($1 = '' OR role = $1)
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`, role, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Profile])
		return err
	}); err != nil {
		return nil, apperrors.MapDBError(err)
	}

	out := make([]*model.Profile, 0, len(rowsOut))
	for i := range rowsOut {
		out = append(out, &rowsOut[i])
	}
	return out, nil
}
