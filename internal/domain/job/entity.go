package job

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Job is owned by the external job-management layer; the matching
// engine reads it to resolve a swiped job back to its recruiter and
// to check that it is still open.
type Job struct {
	ID          uuid.UUID
	RecruiterID uuid.UUID
	Title       string
	Location    string
	Status      Status
	CreatedAt   time.Time
}

func (j Job) Open() bool {
	return j.Status == StatusOpen
}
