package repository

import (
	"context"

	"talentswipe/internal/database"
	"talentswipe/internal/domain/job"

	"github.com/google/uuid"
)

// JobRepository is a read-only view of the externally-owned jobs
// collection; the matching engine never mutates jobs.
type JobRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (job.Job, bool, error)
	ListOpenByRecruiter(ctx context.Context, recruiterUserID uuid.UUID) ([]job.Job, error)
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, id uuid.UUID) (job.Job, bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, recruiter_id, title, location, status, created_at FROM jobs WHERE id=$1`,
		id,
	)
	if err != nil {
		return job.Job{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return job.Job{}, false, rows.Err()
	}
	j, err := scanJob(rows)
	if err != nil {
		return job.Job{}, false, err
	}
	return j, true, rows.Err()
}

func (r *PostgresJobRepository) ListOpenByRecruiter(ctx context.Context, recruiterUserID uuid.UUID) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, recruiter_id, title, location, status, created_at
		 FROM jobs WHERE recruiter_id=$1 AND status=$2
		 ORDER BY created_at DESC`,
		recruiterUserID, string(job.StatusOpen),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func scanJob(rows database.Rows) (job.Job, error) {
	var j job.Job
	var status string
	if err := rows.Scan(&j.ID, &j.RecruiterID, &j.Title, &j.Location, &status, &j.CreatedAt); err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	return j, nil
}
