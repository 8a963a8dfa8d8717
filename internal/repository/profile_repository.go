package repository

import (
	"context"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/profile"

	"github.com/google/uuid"
)

// ProfileRepository is a read-only view of the externally-owned
// candidate profile collection.
type ProfileRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (profile.CandidateProfile, bool, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (profile.CandidateProfile, bool, error)

	// Search returns profiles matching the filter, newest first,
	// capped at limit. Cooldown and matched-candidate exclusion happen
	// in the discovery usecase, not here.
	Search(ctx context.Context, f profile.Filter, limit, offset int) ([]profile.CandidateProfile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, title, skills, yoe, location, avatar_url, about, created_at`

func (r *PostgresProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (profile.CandidateProfile, bool, error) {
	return r.findOne(ctx, `SELECT `+profileColumns+` FROM candidate_profiles WHERE id=$1`, id)
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (profile.CandidateProfile, bool, error) {
	return r.findOne(ctx, `SELECT `+profileColumns+` FROM candidate_profiles WHERE user_id=$1`, userID)
}

func (r *PostgresProfileRepository) findOne(ctx context.Context, query string, args ...any) (profile.CandidateProfile, bool, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return profile.CandidateProfile{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return profile.CandidateProfile{}, false, rows.Err()
	}
	p, err := scanProfile(rows)
	if err != nil {
		return profile.CandidateProfile{}, false, err
	}
	return p, true, rows.Err()
}

func (r *PostgresProfileRepository) Search(ctx context.Context, f profile.Filter, limit, offset int) ([]profile.CandidateProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	// Broad scan; Filter.Matches applies the strict AND semantics so
	// the filtering behavior is identical across storage backends. The
	// offset counts matching rows, not scanned rows.
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM candidate_profiles ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skipped := 0
	var out []profile.CandidateProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		if !f.Matches(p) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		out = append(out, p)
		if len(out) >= limit {
			break
		}
	}
	return out, rows.Err()
}

func scanProfile(rows database.Rows) (profile.CandidateProfile, error) {
	var p profile.CandidateProfile
	if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.Skills, &p.YOE, &p.Location, &p.AvatarURL, &p.About, &p.CreatedAt); err != nil {
		return profile.CandidateProfile{}, err
	}
	return p, nil
}
