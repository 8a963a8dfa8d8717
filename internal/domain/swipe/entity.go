package swipe

import (
	"time"

	"talentswipe/internal/domain/user"

	"github.com/google/uuid"
)

// TargetType tags which identifier space a swipe target lives in.
// Candidates swipe on job ids, recruiters swipe on candidate profile
// ids; the two are bridged during reciprocity detection.
type TargetType string

const (
	TargetJob       TargetType = "job"
	TargetCandidate TargetType = "candidate"
)

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// Swipe is one immutable directional preference. At most one row may
// exist per (ActorUserID, TargetType, TargetID); the ledger is
// append-only and rows are never deleted.
type Swipe struct {
	ID          uuid.UUID
	ActorUserID uuid.UUID
	TargetType  TargetType
	TargetID    uuid.UUID
	Direction   Direction
	CreatedAt   time.Time
}

func ParseTargetType(s string) (TargetType, bool) {
	switch TargetType(s) {
	case TargetJob:
		return TargetJob, true
	case TargetCandidate:
		return TargetCandidate, true
	default:
		return "", false
	}
}

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case DirectionLeft:
		return DirectionLeft, true
	case DirectionRight:
		return DirectionRight, true
	default:
		return "", false
	}
}

// AllowedTarget reports whether a role may swipe on a target type.
// Candidates only target jobs, recruiters only target candidate
// profiles.
func AllowedTarget(role user.Role, t TargetType) bool {
	switch role {
	case user.RoleCandidate:
		return t == TargetJob
	case user.RoleRecruiter:
		return t == TargetCandidate
	default:
		return false
	}
}

type Stats struct {
	Total       int64
	Today       int64
	RightSwipes int64
	LeftSwipes  int64
}
