package repository

import (
	"context"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/match"

	"github.com/google/uuid"
)

type UnmatchRepository interface {
	Insert(ctx context.Context, rec match.UnmatchRecord) error

	// FindLatest returns the most recent unmatch record for the pair.
	FindLatest(ctx context.Context, candidateUserID, recruiterUserID uuid.UUID) (match.UnmatchRecord, bool, error)
}

type PostgresUnmatchRepository struct {
	db database.DB
}

func NewPostgresUnmatchRepository(db database.DB) *PostgresUnmatchRepository {
	return &PostgresUnmatchRepository{db: db}
}

func (r *PostgresUnmatchRepository) Insert(ctx context.Context, rec match.UnmatchRecord) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO unmatches (id, candidate_user_id, recruiter_user_id, cooldown_days, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		rec.ID, rec.CandidateUserID, rec.RecruiterUserID, rec.CooldownDays, rec.CreatedAt,
	)
	return err
}

func (r *PostgresUnmatchRepository) FindLatest(ctx context.Context, candidateUserID, recruiterUserID uuid.UUID) (match.UnmatchRecord, bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_user_id, recruiter_user_id, cooldown_days, created_at
		 FROM unmatches
		 WHERE candidate_user_id=$1 AND recruiter_user_id=$2
		 ORDER BY created_at DESC LIMIT 1`,
		candidateUserID, recruiterUserID,
	)
	if err != nil {
		return match.UnmatchRecord{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return match.UnmatchRecord{}, false, rows.Err()
	}
	var rec match.UnmatchRecord
	if err := rows.Scan(&rec.ID, &rec.CandidateUserID, &rec.RecruiterUserID, &rec.CooldownDays, &rec.CreatedAt); err != nil {
		return match.UnmatchRecord{}, false, err
	}
	return rec, true, rows.Err()
}
