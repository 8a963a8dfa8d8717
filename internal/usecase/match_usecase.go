package usecase

import (
	"context"
	"log"
	"time"

	"talentswipe/internal/analytics"
	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository"

	"github.com/google/uuid"
)

// DefaultCooldownDays applies when a recruiter never configured a
// cooldown before their first unmatch.
const DefaultCooldownDays = 30

type MatchUsecase interface {
	List(ctx context.Context, userID uuid.UUID, role user.Role, page, pageSize int) ([]match.Match, Pagination, error)
	Get(ctx context.Context, matchID, requesterID uuid.UUID, role user.Role) (match.Match, error)
	Unmatch(ctx context.Context, matchID, requesterID uuid.UUID, role user.Role) error
	Stats(ctx context.Context, userID uuid.UUID, role user.Role) (match.Stats, error)

	// IsParty reports whether the user is one of the match's two
	// sides; the websocket layer uses it for join-room checks.
	IsParty(ctx context.Context, matchID, userID uuid.UUID, role user.Role) (bool, error)
}

type Match struct {
	matches   repository.MatchRepository
	unmatches repository.UnmatchRepository
	settings  repository.RecruiterSettingsRepository

	cache   FeedCache
	tracker EventTracker
	logger  *log.Logger
	now     func() time.Time
}

func NewMatchUsecase(
	matches repository.MatchRepository,
	unmatches repository.UnmatchRepository,
	settings repository.RecruiterSettingsRepository,
	cache FeedCache,
	tracker EventTracker,
	logger *log.Logger,
) *Match {
	return &Match{
		matches:   matches,
		unmatches: unmatches,
		settings:  settings,
		cache:     cache,
		tracker:   tracker,
		logger:    logger,
		now:       time.Now,
	}
}

func (u *Match) List(ctx context.Context, userID uuid.UUID, role user.Role, page, pageSize int) ([]match.Match, Pagination, error) {
	if userID == uuid.Nil || !role.Valid() {
		return nil, Pagination{}, ErrInvalidInput
	}

	page, limit, offset := pageBounds(page, pageSize)
	items, total, err := u.matches.ListForUser(ctx, userID, role, limit, offset)
	if err != nil {
		return nil, Pagination{}, ErrInternal
	}
	return items, newPagination(page, limit, total), nil
}

func (u *Match) Get(ctx context.Context, matchID, requesterID uuid.UUID, role user.Role) (match.Match, error) {
	m, ok, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		return match.Match{}, ErrInternal
	}
	if !ok {
		return match.Match{}, ErrMatchNotFound
	}
	if !m.HasParty(requesterID, role) {
		return match.Match{}, ErrForbidden
	}
	return m, nil
}

func (u *Match) Unmatch(ctx context.Context, matchID, requesterID uuid.UUID, role user.Role) error {
	m, err := u.Get(ctx, matchID, requesterID, role)
	if err != nil {
		return err
	}

	if err := u.matches.Delete(ctx, m.ID); err != nil {
		return ErrInternal
	}

	// Snapshot the recruiter's current setting; later changes never
	// rewrite this record.
	days := DefaultCooldownDays
	if u.settings != nil {
		if d, ok, err := u.settings.GetCooldownDays(ctx, m.RecruiterUserID); err == nil && ok {
			days = d
		}
	}

	rec := match.UnmatchRecord{
		ID:              uuid.New(),
		CandidateUserID: m.CandidateUserID,
		RecruiterUserID: m.RecruiterUserID,
		CooldownDays:    days,
		CreatedAt:       u.now().UTC(),
	}
	if err := u.unmatches.Insert(ctx, rec); err != nil {
		return ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.DeleteByPattern(ctx, feedCachePattern(m.RecruiterUserID)); err != nil && u.logger != nil {
			u.logger.Printf("feed cache invalidation failed | recruiter=%s error=%v", m.RecruiterUserID, err)
		}
	}

	if u.tracker != nil {
		u.tracker.Track(analytics.EventCandidateUnmatched, requesterID, map[string]any{
			"match_id":      m.ID.String(),
			"cooldown_days": days,
		})
	}
	return nil
}

func (u *Match) Stats(ctx context.Context, userID uuid.UUID, role user.Role) (match.Stats, error) {
	if userID == uuid.Nil || !role.Valid() {
		return match.Stats{}, ErrInvalidInput
	}

	now := u.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.AddDate(0, 0, -7)

	st, err := u.matches.Stats(ctx, userID, role, dayStart, weekStart)
	if err != nil {
		return match.Stats{}, ErrInternal
	}
	return st, nil
}

func (u *Match) IsParty(ctx context.Context, matchID, userID uuid.UUID, role user.Role) (bool, error) {
	m, ok, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		return false, ErrInternal
	}
	if !ok {
		return false, ErrMatchNotFound
	}
	return m.HasParty(userID, role), nil
}
