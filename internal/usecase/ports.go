package usecase

import (
	"context"
	"time"

	"talentswipe/internal/domain/match"

	"github.com/google/uuid"
)

// MatchNotifier fans a match-created event out to both parties' live
// connections. Best-effort: implementations must never return control
// of delivery failures to the matching path.
type MatchNotifier interface {
	NotifyMatch(candidateUserID, recruiterUserID, matchID uuid.UUID)
}

// MessageBroadcaster pushes a persisted message to the match channel.
type MessageBroadcaster interface {
	BroadcastMessage(matchID uuid.UUID, msg match.Message)
}

// EventTracker records product analytics. Fire-and-forget.
type EventTracker interface {
	Track(event string, userID uuid.UUID, props map[string]any)
}

// FeedCache caches computed discovery feeds. A nil implementation or
// an unavailable backend both mean "no cache".
type FeedCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

func pageBounds(page, pageSize int) (normPage, limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize, (page - 1) * pageSize
}

func newPagination(page, pageSize int, total int64) Pagination {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
