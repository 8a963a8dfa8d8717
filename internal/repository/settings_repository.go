package repository

import (
	"context"
	"encoding/json"
	"time"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/profile"

	"github.com/google/uuid"
)

type RecruiterSettingsRepository interface {
	// GetCooldownDays returns the recruiter's cooldown setting; ok is
	// false when the recruiter never set one.
	GetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID) (int, bool, error)
	SetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID, days int) error

	GetFeedFilters(ctx context.Context, recruiterUserID uuid.UUID) (profile.Filter, bool, error)
	SetFeedFilters(ctx context.Context, recruiterUserID uuid.UUID, f profile.Filter) error
}

type PostgresRecruiterSettingsRepository struct {
	db database.DB
}

func NewPostgresRecruiterSettingsRepository(db database.DB) *PostgresRecruiterSettingsRepository {
	return &PostgresRecruiterSettingsRepository{db: db}
}

func (r *PostgresRecruiterSettingsRepository) GetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID) (int, bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cooldown_days FROM recruiter_settings WHERE recruiter_user_id=$1`,
		recruiterUserID,
	)
	if err != nil {
		return 0, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, rows.Err()
	}
	var days int
	if err := rows.Scan(&days); err != nil {
		return 0, false, err
	}
	return days, true, rows.Err()
}

func (r *PostgresRecruiterSettingsRepository) SetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID, days int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO recruiter_settings (recruiter_user_id, cooldown_days, updated_at)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (recruiter_user_id) DO UPDATE SET
			cooldown_days = EXCLUDED.cooldown_days,
			updated_at = EXCLUDED.updated_at`,
		recruiterUserID, days, time.Now().UTC(),
	)
	return err
}

type feedFiltersRow struct {
	Skills   []string `json:"skills,omitempty"`
	Location string   `json:"location,omitempty"`
	MinYOE   *int     `json:"min_yoe,omitempty"`
	MaxYOE   *int     `json:"max_yoe,omitempty"`
}

func (r *PostgresRecruiterSettingsRepository) GetFeedFilters(ctx context.Context, recruiterUserID uuid.UUID) (profile.Filter, bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT feed_filters FROM recruiter_settings WHERE recruiter_user_id=$1`,
		recruiterUserID,
	)
	if err != nil {
		return profile.Filter{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return profile.Filter{}, false, rows.Err()
	}
	var raw []byte
	if err := rows.Scan(&raw); err != nil {
		return profile.Filter{}, false, err
	}

	var row feedFiltersRow
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &row); err != nil {
			return profile.Filter{}, false, err
		}
	}
	return profile.Filter{
		Skills:   row.Skills,
		Location: row.Location,
		MinYOE:   row.MinYOE,
		MaxYOE:   row.MaxYOE,
	}, true, rows.Err()
}

func (r *PostgresRecruiterSettingsRepository) SetFeedFilters(ctx context.Context, recruiterUserID uuid.UUID, f profile.Filter) error {
	raw, err := json.Marshal(feedFiltersRow{
		Skills:   f.Skills,
		Location: f.Location,
		MinYOE:   f.MinYOE,
		MaxYOE:   f.MaxYOE,
	})
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO recruiter_settings (recruiter_user_id, feed_filters, updated_at)
		 VALUES ($1,$2,$3)
		 ON CONFLICT (recruiter_user_id) DO UPDATE SET
			feed_filters = EXCLUDED.feed_filters,
			updated_at = EXCLUDED.updated_at`,
		recruiterUserID, raw, time.Now().UTC(),
	)
	return err
}
