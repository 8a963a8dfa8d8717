package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository/memory"

	"github.com/google/uuid"
)

type mockFeedCache struct {
	mu       sync.Mutex
	deleted  []string
	setCalls int
}

func (m *mockFeedCache) GetJSON(context.Context, string, any) (bool, error) { return false, nil }

func (m *mockFeedCache) SetJSON(context.Context, string, any, time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setCalls++
	return nil
}

func (m *mockFeedCache) DeleteByPattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	return nil
}

type matchFixture struct {
	uc        *Match
	matches   *memory.MatchRepository
	unmatches *memory.UnmatchRepository
	settings  *memory.RecruiterSettingsRepository
	cache     *mockFeedCache
	tracker   *mockTracker

	candidateID uuid.UUID
	recruiterID uuid.UUID
	matchID     uuid.UUID
}

func newMatchFixture(t *testing.T) *matchFixture {
	t.Helper()

	f := &matchFixture{
		matches:     memory.NewMatchRepository(),
		unmatches:   memory.NewUnmatchRepository(),
		settings:    memory.NewRecruiterSettingsRepository(),
		cache:       &mockFeedCache{},
		tracker:     &mockTracker{},
		candidateID: uuid.New(),
		recruiterID: uuid.New(),
		matchID:     uuid.New(),
	}

	if err := f.matches.Insert(context.Background(), match.Match{
		ID:              f.matchID,
		CandidateUserID: f.candidateID,
		RecruiterUserID: f.recruiterID,
		JobID:           uuid.New(),
		CreatedAt:       time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	f.uc = NewMatchUsecase(f.matches, f.unmatches, f.settings, f.cache, f.tracker, nil)
	return f
}

func TestMatchList_BothSidesSeeIt(t *testing.T) {
	f := newMatchFixture(t)

	for _, side := range []struct {
		userID uuid.UUID
		role   user.Role
	}{
		{f.candidateID, user.RoleCandidate},
		{f.recruiterID, user.RoleRecruiter},
	} {
		items, pagination, err := f.uc.List(context.Background(), side.userID, side.role, 1, 20)
		if err != nil {
			t.Fatalf("list for %s: %v", side.role, err)
		}
		if len(items) != 1 || pagination.Total != 1 {
			t.Fatalf("%s should see 1 match, got %d", side.role, len(items))
		}
	}

	items, _, err := f.uc.List(context.Background(), uuid.New(), user.RoleCandidate, 1, 20)
	if err != nil {
		t.Fatalf("list for stranger: %v", err)
	}
	if len(items) != 0 {
		t.Fatal("stranger should see no matches")
	}
}

func TestMatchGet_NotParty(t *testing.T) {
	f := newMatchFixture(t)

	_, err := f.uc.Get(context.Background(), f.matchID, uuid.New(), user.RoleCandidate)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The candidate's id in the recruiter role is not a party either.
	_, err = f.uc.Get(context.Background(), f.matchID, f.candidateID, user.RoleRecruiter)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for role mismatch, got %v", err)
	}
}

func TestMatchGet_NotFound(t *testing.T) {
	f := newMatchFixture(t)

	_, err := f.uc.Get(context.Background(), uuid.New(), f.candidateID, user.RoleCandidate)
	if !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("expected ErrMatchNotFound, got %v", err)
	}
}

func TestUnmatch_SnapshotsCooldownAndInvalidatesFeed(t *testing.T) {
	f := newMatchFixture(t)

	if err := f.settings.SetCooldownDays(context.Background(), f.recruiterID, 14); err != nil {
		t.Fatalf("set cooldown: %v", err)
	}

	if err := f.uc.Unmatch(context.Background(), f.matchID, f.recruiterID, user.RoleRecruiter); err != nil {
		t.Fatalf("unmatch: %v", err)
	}

	if _, ok, _ := f.matches.FindByID(context.Background(), f.matchID); ok {
		t.Fatal("match should be deleted")
	}

	rec, ok, err := f.unmatches.FindLatest(context.Background(), f.candidateID, f.recruiterID)
	if err != nil || !ok {
		t.Fatalf("unmatch record missing: ok=%v err=%v", ok, err)
	}
	if rec.CooldownDays != 14 {
		t.Fatalf("expected snapshot of 14 days, got %d", rec.CooldownDays)
	}

	if len(f.cache.deleted) != 1 {
		t.Fatalf("expected 1 feed invalidation, got %d", len(f.cache.deleted))
	}
	if !f.tracker.has("candidate_unmatched") {
		t.Error("expected candidate_unmatched event")
	}
}

func TestUnmatch_DefaultCooldownWhenUnset(t *testing.T) {
	f := newMatchFixture(t)

	if err := f.uc.Unmatch(context.Background(), f.matchID, f.candidateID, user.RoleCandidate); err != nil {
		t.Fatalf("unmatch: %v", err)
	}

	rec, ok, _ := f.unmatches.FindLatest(context.Background(), f.candidateID, f.recruiterID)
	if !ok {
		t.Fatal("unmatch record missing")
	}
	if rec.CooldownDays != DefaultCooldownDays {
		t.Fatalf("expected default %d days, got %d", DefaultCooldownDays, rec.CooldownDays)
	}
}

func TestUnmatch_ForbiddenForStranger(t *testing.T) {
	f := newMatchFixture(t)

	err := f.uc.Unmatch(context.Background(), f.matchID, uuid.New(), user.RoleRecruiter)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok, _ := f.matches.FindByID(context.Background(), f.matchID); !ok {
		t.Fatal("match must survive a forbidden unmatch")
	}
}

func TestMatchStats(t *testing.T) {
	f := newMatchFixture(t)

	old := match.Match{
		ID:              uuid.New(),
		CandidateUserID: f.candidateID,
		RecruiterUserID: f.recruiterID,
		JobID:           uuid.New(),
		CreatedAt:       time.Now().UTC().AddDate(0, 0, -10),
	}
	if err := f.matches.Insert(context.Background(), old); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	st, err := f.uc.Stats(context.Background(), f.candidateID, user.RoleCandidate)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Total != 2 {
		t.Fatalf("expected 2 total, got %d", st.Total)
	}
	if st.Today != 1 || st.ThisWeek != 1 {
		t.Fatalf("expected today=1 thisWeek=1, got %+v", st)
	}
}
