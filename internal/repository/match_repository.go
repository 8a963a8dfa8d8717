package repository

import (
	"context"
	"strconv"
	"time"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"

	"github.com/google/uuid"
)

type MatchRepository interface {
	// Insert persists a match. Returns ErrDuplicateKey when a match
	// already exists for (CandidateUserID, JobID); callers treat that
	// as "already matched" and re-fetch via FindByPair.
	Insert(ctx context.Context, m match.Match) error

	FindByID(ctx context.Context, id uuid.UUID) (match.Match, bool, error)
	FindByPair(ctx context.Context, candidateUserID, jobID uuid.UUID) (match.Match, bool, error)

	// ListForUser returns matches newest first for the side of the
	// pair selected by role, with the total count.
	ListForUser(ctx context.Context, userID uuid.UUID, role user.Role, limit, offset int) ([]match.Match, int64, error)

	// CandidateIDsForRecruiter returns the candidate user ids the
	// recruiter currently has matches with.
	CandidateIDsForRecruiter(ctx context.Context, recruiterUserID uuid.UUID) ([]uuid.UUID, error)

	Delete(ctx context.Context, id uuid.UUID) error

	Stats(ctx context.Context, userID uuid.UUID, role user.Role, dayStart, weekStart time.Time) (match.Stats, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

func (r *PostgresMatchRepository) Insert(ctx context.Context, m match.Match) error {
	affected, err := r.db.Exec(ctx,
		`INSERT INTO matches (id, candidate_user_id, recruiter_user_id, job_id, created_at)
		 VALUES ($1,$2,$3,$4,$5)
		 ON CONFLICT (candidate_user_id, job_id) DO NOTHING`,
		m.ID, m.CandidateUserID, m.RecruiterUserID, m.JobID, m.CreatedAt,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrDuplicateKey
	}
	return nil
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, bool, error) {
	return r.findOne(ctx,
		`SELECT id, candidate_user_id, recruiter_user_id, job_id, created_at
		 FROM matches WHERE id=$1`, id)
}

func (r *PostgresMatchRepository) FindByPair(ctx context.Context, candidateUserID, jobID uuid.UUID) (match.Match, bool, error) {
	return r.findOne(ctx,
		`SELECT id, candidate_user_id, recruiter_user_id, job_id, created_at
		 FROM matches WHERE candidate_user_id=$1 AND job_id=$2`, candidateUserID, jobID)
}

func (r *PostgresMatchRepository) findOne(ctx context.Context, query string, args ...any) (match.Match, bool, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return match.Match{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return match.Match{}, false, rows.Err()
	}
	var m match.Match
	if err := rows.Scan(&m.ID, &m.CandidateUserID, &m.RecruiterUserID, &m.JobID, &m.CreatedAt); err != nil {
		return match.Match{}, false, err
	}
	return m, true, rows.Err()
}

func (r *PostgresMatchRepository) ListForUser(ctx context.Context, userID uuid.UUID, role user.Role, limit, offset int) ([]match.Match, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	col := sideColumn(role)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM matches WHERE `+col+`=$1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, candidate_user_id, recruiter_user_id, job_id, created_at
		 FROM matches WHERE `+col+`=$1
		 ORDER BY created_at DESC LIMIT `+strconv.Itoa(limit)+` OFFSET `+strconv.Itoa(offset),
		userID,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []match.Match
	for rows.Next() {
		var m match.Match
		if err := rows.Scan(&m.ID, &m.CandidateUserID, &m.RecruiterUserID, &m.JobID, &m.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (r *PostgresMatchRepository) CandidateIDsForRecruiter(ctx context.Context, recruiterUserID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT candidate_user_id FROM matches WHERE recruiter_user_id=$1`,
		recruiterUserID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (r *PostgresMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM matches WHERE id=$1`, id)
	return err
}

func (r *PostgresMatchRepository) Stats(ctx context.Context, userID uuid.UUID, role user.Role, dayStart, weekStart time.Time) (match.Stats, error) {
	col := sideColumn(role)

	var st match.Stats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE created_at >= $2),
		        COUNT(*) FILTER (WHERE created_at >= $3)
		 FROM matches WHERE `+col+`=$1`,
		userID, dayStart, weekStart,
	).Scan(&st.Total, &st.Today, &st.ThisWeek)
	return st, err
}

func sideColumn(role user.Role) string {
	if role == user.RoleRecruiter {
		return "recruiter_user_id"
	}
	return "candidate_user_id"
}
