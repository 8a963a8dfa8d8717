package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"talentswipe/internal/analytics"
	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/swipe"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository"

	"github.com/google/uuid"
)

// DailySwipeLimit is advisory; it feeds the stats endpoint and is not
// enforced at the ledger.
const DailySwipeLimit = 100

type RecordSwipeInput struct {
	TargetType swipe.TargetType
	TargetID   uuid.UUID
	Direction  swipe.Direction
}

// SwipeResult is the outcome of one recorded swipe. Match is non-nil
// only when the swipe completed a mutual right-swipe; IsNewMatch is
// true from the caller's perspective even when a concurrent duplicate
// insert collapsed to the already-stored row.
type SwipeResult struct {
	Swipe      swipe.Swipe
	Match      *match.Match
	IsNewMatch bool
}

type SwipeUsecase interface {
	Record(ctx context.Context, actorUserID uuid.UUID, role user.Role, in RecordSwipeInput) (SwipeResult, error)
	History(ctx context.Context, actorUserID uuid.UUID, targetType *swipe.TargetType, page, pageSize int) ([]swipe.Swipe, Pagination, error)
	Stats(ctx context.Context, actorUserID uuid.UUID) (swipe.Stats, error)
}

type Swipe struct {
	swipes   repository.SwipeRepository
	matches  repository.MatchRepository
	jobs     repository.JobRepository
	profiles repository.ProfileRepository

	notifier MatchNotifier
	tracker  EventTracker
	logger   *log.Logger
	now      func() time.Time
}

func NewSwipeUsecase(
	swipes repository.SwipeRepository,
	matches repository.MatchRepository,
	jobs repository.JobRepository,
	profiles repository.ProfileRepository,
	notifier MatchNotifier,
	tracker EventTracker,
	logger *log.Logger,
) *Swipe {
	return &Swipe{
		swipes:   swipes,
		matches:  matches,
		jobs:     jobs,
		profiles: profiles,
		notifier: notifier,
		tracker:  tracker,
		logger:   logger,
		now:      time.Now,
	}
}

func (u *Swipe) Record(ctx context.Context, actorUserID uuid.UUID, role user.Role, in RecordSwipeInput) (SwipeResult, error) {
	if actorUserID == uuid.Nil || !role.Valid() {
		return SwipeResult{}, ErrInvalidInput
	}
	if in.Direction != swipe.DirectionLeft && in.Direction != swipe.DirectionRight {
		return SwipeResult{}, ErrInvalidInput
	}
	if in.TargetType != swipe.TargetJob && in.TargetType != swipe.TargetCandidate {
		return SwipeResult{}, ErrInvalidInput
	}
	if !swipe.AllowedTarget(role, in.TargetType) {
		return SwipeResult{}, ErrInvalidTargetForRole
	}

	if err := u.verifyTarget(ctx, in.TargetType, in.TargetID); err != nil {
		return SwipeResult{}, err
	}

	s := swipe.Swipe{
		ID:          uuid.New(),
		ActorUserID: actorUserID,
		TargetType:  in.TargetType,
		TargetID:    in.TargetID,
		Direction:   in.Direction,
		CreatedAt:   u.now().UTC(),
	}

	// The unique index on (actor, target_type, target_id) makes this
	// check-and-insert atomic; a concurrent identical request loses
	// here rather than producing a second row.
	if err := u.swipes.Insert(ctx, s); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return SwipeResult{}, ErrDuplicateSwipe
		}
		return SwipeResult{}, ErrInternal
	}

	u.track(analytics.EventSwipeMade, actorUserID, map[string]any{
		"actor_role":  string(role),
		"target_type": string(in.TargetType),
		"direction":   string(in.Direction),
	})

	result := SwipeResult{Swipe: s}
	if in.Direction != swipe.DirectionRight {
		return result, nil
	}

	m, matched, err := u.detectReciprocity(ctx, s, role)
	if err != nil {
		return SwipeResult{}, err
	}
	if !matched {
		return result, nil
	}

	stored, err := u.createMatch(ctx, m)
	if err != nil {
		return SwipeResult{}, err
	}
	result.Match = &stored
	result.IsNewMatch = true
	return result, nil
}

func (u *Swipe) verifyTarget(ctx context.Context, targetType swipe.TargetType, targetID uuid.UUID) error {
	switch targetType {
	case swipe.TargetJob:
		j, ok, err := u.jobs.FindByID(ctx, targetID)
		if err != nil {
			return ErrInternal
		}
		if !ok {
			return ErrTargetNotFound
		}
		if !j.Open() {
			return ErrTargetUnavailable
		}
	case swipe.TargetCandidate:
		_, ok, err := u.profiles.FindByID(ctx, targetID)
		if err != nil {
			return ErrInternal
		}
		if !ok {
			return ErrTargetNotFound
		}
	}
	return nil
}

// detectReciprocity resolves the opposite party and checks for a prior
// right-swipe back. The two directions are asymmetric because
// candidates swipe on job ids while recruiters swipe on profile ids.
func (u *Swipe) detectReciprocity(ctx context.Context, s swipe.Swipe, role user.Role) (match.Match, bool, error) {
	switch {
	case role == user.RoleCandidate && s.TargetType == swipe.TargetJob:
		return u.reciprocityForCandidate(ctx, s)
	case role == user.RoleRecruiter && s.TargetType == swipe.TargetCandidate:
		return u.reciprocityForRecruiter(ctx, s)
	default:
		return match.Match{}, false, nil
	}
}

func (u *Swipe) reciprocityForCandidate(ctx context.Context, s swipe.Swipe) (match.Match, bool, error) {
	j, ok, err := u.jobs.FindByID(ctx, s.TargetID)
	if err != nil {
		return match.Match{}, false, ErrInternal
	}
	if !ok {
		return match.Match{}, false, ErrTargetNotFound
	}

	// Recruiters swipe on profile ids, so the candidate's own profile
	// bridges the lookup. No profile means no recruiter swipe can
	// exist on it.
	prof, ok, err := u.profiles.FindByUserID(ctx, s.ActorUserID)
	if err != nil {
		return match.Match{}, false, ErrInternal
	}
	if !ok {
		return match.Match{}, false, nil
	}

	_, found, err := u.swipes.FindRightSwipe(ctx, j.RecruiterID, swipe.TargetCandidate, prof.ID)
	if err != nil {
		return match.Match{}, false, ErrInternal
	}
	if !found {
		return match.Match{}, false, nil
	}

	return match.Match{
		CandidateUserID: s.ActorUserID,
		RecruiterUserID: j.RecruiterID,
		JobID:           j.ID,
	}, true, nil
}

func (u *Swipe) reciprocityForRecruiter(ctx context.Context, s swipe.Swipe) (match.Match, bool, error) {
	prof, ok, err := u.profiles.FindByID(ctx, s.TargetID)
	if err != nil {
		return match.Match{}, false, ErrInternal
	}
	if !ok {
		return match.Match{}, false, ErrTargetNotFound
	}

	openJobs, err := u.jobs.ListOpenByRecruiter(ctx, s.ActorUserID)
	if err != nil {
		return match.Match{}, false, ErrInternal
	}
	if len(openJobs) == 0 {
		return match.Match{}, false, nil
	}

	jobIDs := make([]uuid.UUID, 0, len(openJobs))
	for _, j := range openJobs {
		jobIDs = append(jobIDs, j.ID)
	}

	candidateSwipes, err := u.swipes.FindRightSwipesOnJobs(ctx, prof.UserID, jobIDs)
	if err != nil {
		return match.Match{}, false, ErrInternal
	}
	if len(candidateSwipes) == 0 {
		return match.Match{}, false, nil
	}

	// Most recent intent wins: explicit sort, not storage order.
	sort.Slice(candidateSwipes, func(i, j int) bool {
		return candidateSwipes[i].CreatedAt.After(candidateSwipes[j].CreatedAt)
	})

	return match.Match{
		CandidateUserID: prof.UserID,
		RecruiterUserID: s.ActorUserID,
		JobID:           candidateSwipes[0].TargetID,
	}, true, nil
}

// createMatch stores the match idempotently. Losing the duplicate-key
// race to the concurrent opposite swipe is benign: the stored row is
// fetched and returned instead.
func (u *Swipe) createMatch(ctx context.Context, m match.Match) (match.Match, error) {
	m.ID = uuid.New()
	m.CreatedAt = u.now().UTC()

	err := u.matches.Insert(ctx, m)
	if err == nil {
		u.track(analytics.EventMatchCreated, m.CandidateUserID, map[string]any{
			"recruiter_user_id": m.RecruiterUserID.String(),
			"job_id":            m.JobID.String(),
		})
		if u.notifier != nil {
			u.notifier.NotifyMatch(m.CandidateUserID, m.RecruiterUserID, m.ID)
		}
		return m, nil
	}

	if errors.Is(err, repository.ErrDuplicateKey) {
		existing, ok, ferr := u.matches.FindByPair(ctx, m.CandidateUserID, m.JobID)
		if ferr != nil || !ok {
			return match.Match{}, ErrInternal
		}
		if u.logger != nil {
			u.logger.Printf("match already exists | candidate=%s job=%s match=%s", m.CandidateUserID, m.JobID, existing.ID)
		}
		return existing, nil
	}

	return match.Match{}, ErrInternal
}

func (u *Swipe) History(ctx context.Context, actorUserID uuid.UUID, targetType *swipe.TargetType, page, pageSize int) ([]swipe.Swipe, Pagination, error) {
	if actorUserID == uuid.Nil {
		return nil, Pagination{}, ErrInvalidInput
	}

	page, limit, offset := pageBounds(page, pageSize)
	items, total, err := u.swipes.ListByActor(ctx, actorUserID, targetType, limit, offset)
	if err != nil {
		return nil, Pagination{}, ErrInternal
	}
	return items, newPagination(page, limit, total), nil
}

func (u *Swipe) Stats(ctx context.Context, actorUserID uuid.UUID) (swipe.Stats, error) {
	if actorUserID == uuid.Nil {
		return swipe.Stats{}, ErrInvalidInput
	}

	now := u.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	st, err := u.swipes.Stats(ctx, actorUserID, dayStart)
	if err != nil {
		return swipe.Stats{}, ErrInternal
	}
	return st, nil
}

func (u *Swipe) track(event string, userID uuid.UUID, props map[string]any) {
	if u.tracker != nil {
		u.tracker.Track(event, userID, props)
	}
}
