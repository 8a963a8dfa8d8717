package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CandidateProfile is owned by the external profile layer and read
// here for two purposes: bridging a recruiter's swipe target (a
// profile id) to the underlying candidate user id, and feeding the
// recruiter discovery feed.
type CandidateProfile struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Title     string
	Skills    []string
	YOE       int
	Location  string
	AvatarURL string
	About     string
	CreatedAt time.Time
}

// Filter narrows the discovery feed. Skills match with OR semantics
// inside the list; skills, location and yoe bounds combine with AND.
type Filter struct {
	Skills   []string
	Location string
	MinYOE   *int
	MaxYOE   *int
}

func (f Filter) Matches(p CandidateProfile) bool {
	if len(f.Skills) > 0 && !matchesAnySkill(f.Skills, p.Skills) {
		return false
	}
	if f.Location != "" && !containsFold(p.Location, f.Location) {
		return false
	}
	if f.MinYOE != nil && p.YOE < *f.MinYOE {
		return false
	}
	if f.MaxYOE != nil && p.YOE > *f.MaxYOE {
		return false
	}
	return true
}

func matchesAnySkill(wanted, have []string) bool {
	for _, w := range wanted {
		for _, h := range have {
			if containsFold(h, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return needle == "" || strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
