package match

import (
	"time"

	"talentswipe/internal/domain/user"

	"github.com/google/uuid"
)

// Match is a confirmed mutual right-swipe between a candidate and a
// recruiter, scoped to one job. At most one row may exist per
// (CandidateUserID, JobID).
type Match struct {
	ID              uuid.UUID
	CandidateUserID uuid.UUID
	RecruiterUserID uuid.UUID
	JobID           uuid.UUID
	CreatedAt       time.Time
}

// HasParty reports whether the given user, acting in the given role,
// is one of the two sides of the match.
func (m Match) HasParty(userID uuid.UUID, role user.Role) bool {
	switch role {
	case user.RoleCandidate:
		return m.CandidateUserID == userID
	case user.RoleRecruiter:
		return m.RecruiterUserID == userID
	default:
		return false
	}
}

// UnmatchRecord is written when a match is deleted. CooldownDays is
// snapshotted from the recruiter's setting at unmatch time; later
// setting changes do not alter past records.
type UnmatchRecord struct {
	ID              uuid.UUID
	CandidateUserID uuid.UUID
	RecruiterUserID uuid.UUID
	CooldownDays    int
	CreatedAt       time.Time
}

// UnderCooldown reports whether the record still suppresses the
// candidate at the given instant. The window is half-open:
// [CreatedAt, CreatedAt + CooldownDays*24h).
func (r UnmatchRecord) UnderCooldown(now time.Time) bool {
	return now.Sub(r.CreatedAt) < time.Duration(r.CooldownDays)*24*time.Hour
}

type Message struct {
	ID        uuid.UUID
	MatchID   uuid.UUID
	SenderID  uuid.UUID
	Body      string
	CreatedAt time.Time
}

type Stats struct {
	Total    int64
	Today    int64
	ThisWeek int64
}
