package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/profile"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository/memory"

	"github.com/google/uuid"
)

type discoveryFixture struct {
	uc        *Discovery
	profiles  *memory.ProfileRepository
	matches   *memory.MatchRepository
	settings  *memory.RecruiterSettingsRepository
	unmatches *memory.UnmatchRepository

	recruiterID uuid.UUID
}

func newDiscoveryFixture(t *testing.T) *discoveryFixture {
	t.Helper()

	f := &discoveryFixture{
		profiles:    memory.NewProfileRepository(),
		matches:     memory.NewMatchRepository(),
		settings:    memory.NewRecruiterSettingsRepository(),
		unmatches:   memory.NewUnmatchRepository(),
		recruiterID: uuid.New(),
	}

	cooldown := NewCooldownUsecase(f.settings, f.unmatches)
	f.uc = NewDiscoveryUsecase(f.profiles, f.matches, f.settings, cooldown, nil, nil)
	return f
}

func (f *discoveryFixture) putProfile(userID uuid.UUID, title string, skills []string, yoe int, location string) uuid.UUID {
	id := uuid.New()
	f.profiles.Put(profile.CandidateProfile{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Skills:    skills,
		YOE:       yoe,
		Location:  location,
		CreatedAt: time.Now().UTC(),
	})
	return id
}

func TestCandidateFeed_RecruiterOnly(t *testing.T) {
	f := newDiscoveryFixture(t)

	_, err := f.uc.CandidateFeed(context.Background(), uuid.New(), user.RoleCandidate, profile.Filter{})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCandidateFeed_ExcludesMatchedAndCoolingDown(t *testing.T) {
	f := newDiscoveryFixture(t)

	visible := uuid.New()
	matched := uuid.New()
	cooling := uuid.New()
	f.putProfile(visible, "Go Developer", []string{"Go"}, 3, "Berlin")
	f.putProfile(matched, "Go Developer", []string{"Go"}, 4, "Berlin")
	f.putProfile(cooling, "Go Developer", []string{"Go"}, 5, "Berlin")

	if err := f.matches.Insert(context.Background(), match.Match{
		ID:              uuid.New(),
		CandidateUserID: matched,
		RecruiterUserID: f.recruiterID,
		JobID:           uuid.New(),
		CreatedAt:       time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	if err := f.unmatches.Insert(context.Background(), match.UnmatchRecord{
		ID:              uuid.New(),
		CandidateUserID: cooling,
		RecruiterUserID: f.recruiterID,
		CooldownDays:    10,
		CreatedAt:       time.Now().UTC().Add(-5 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("seed unmatch: %v", err)
	}

	feed, err := f.uc.CandidateFeed(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("expected 1 visible candidate, got %d", len(feed))
	}
	if feed[0].UserID != visible {
		t.Fatalf("expected candidate %s, got %s", visible, feed[0].UserID)
	}
}

func TestCandidateFeed_ReappearsAfterCooldown(t *testing.T) {
	f := newDiscoveryFixture(t)

	candidate := uuid.New()
	f.putProfile(candidate, "Go Developer", []string{"Go"}, 3, "Berlin")

	if err := f.unmatches.Insert(context.Background(), match.UnmatchRecord{
		ID:              uuid.New(),
		CandidateUserID: candidate,
		RecruiterUserID: f.recruiterID,
		CooldownDays:    10,
		CreatedAt:       time.Now().UTC().Add(-11 * 24 * time.Hour),
	}); err != nil {
		t.Fatalf("seed unmatch: %v", err)
	}

	feed, err := f.uc.CandidateFeed(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("candidate should reappear after the window, got %d entries", len(feed))
	}
}

func TestCandidateFeed_MergesSavedAndQueryFilters(t *testing.T) {
	f := newDiscoveryFixture(t)

	goBerlin := uuid.New()
	goMunich := uuid.New()
	rustBerlin := uuid.New()
	f.putProfile(goBerlin, "Go Developer", []string{"Go"}, 3, "Berlin")
	f.putProfile(goMunich, "Go Developer", []string{"Go"}, 3, "Munich")
	f.putProfile(rustBerlin, "Rust Developer", []string{"Rust"}, 3, "Berlin")

	if err := f.uc.SaveFilters(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{
		Skills:   []string{"Go"},
		Location: "Berlin",
	}); err != nil {
		t.Fatalf("save filters: %v", err)
	}

	feed, err := f.uc.CandidateFeed(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 || feed[0].UserID != goBerlin {
		t.Fatalf("saved filters should select the Berlin Go candidate, got %d entries", len(feed))
	}

	// Query-time location overrides the saved one; the skill filter
	// stays in effect.
	feed, err = f.uc.CandidateFeed(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{Location: "Munich"})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 1 || feed[0].UserID != goMunich {
		t.Fatalf("override should select the Munich Go candidate, got %d entries", len(feed))
	}
}

func TestCandidateFeed_CapsAtFeedLimit(t *testing.T) {
	f := newDiscoveryFixture(t)

	for i := 0; i < feedLimit+10; i++ {
		f.putProfile(uuid.New(), "Go Developer", []string{"Go"}, 3, "Berlin")
	}

	feed, err := f.uc.CandidateFeed(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != feedLimit {
		t.Fatalf("expected %d entries, got %d", feedLimit, len(feed))
	}
}

func TestCandidateFeed_PagesPastExcludedCandidates(t *testing.T) {
	f := newDiscoveryFixture(t)

	base := time.Now().UTC().Add(-24 * time.Hour)

	// Older eligible candidates sit behind a full page of newer, already
	// matched ones; the feed must reach them anyway.
	eligible := make(map[uuid.UUID]bool, 10)
	for i := 0; i < 10; i++ {
		userID := uuid.New()
		eligible[userID] = true
		f.profiles.Put(profile.CandidateProfile{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     "Go Developer",
			Skills:    []string{"Go"},
			YOE:       3,
			Location:  "Berlin",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	for i := 0; i < feedPageSize+10; i++ {
		userID := uuid.New()
		f.profiles.Put(profile.CandidateProfile{
			ID:        uuid.New(),
			UserID:    userID,
			Title:     "Go Developer",
			Skills:    []string{"Go"},
			YOE:       4,
			Location:  "Berlin",
			CreatedAt: base.Add(time.Hour + time.Duration(i)*time.Minute),
		})
		if err := f.matches.Insert(context.Background(), match.Match{
			ID:              uuid.New(),
			CandidateUserID: userID,
			RecruiterUserID: f.recruiterID,
			JobID:           uuid.New(),
			CreatedAt:       time.Now().UTC(),
		}); err != nil {
			t.Fatalf("seed match: %v", err)
		}
	}

	feed, err := f.uc.CandidateFeed(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{})
	if err != nil {
		t.Fatalf("feed: %v", err)
	}
	if len(feed) != 10 {
		t.Fatalf("expected 10 eligible candidates, got %d", len(feed))
	}
	for _, p := range feed {
		if !eligible[p.UserID] {
			t.Fatalf("unexpected candidate %s in feed", p.UserID)
		}
	}
}

func TestSaveFilters_RejectsNegativeBounds(t *testing.T) {
	f := newDiscoveryFixture(t)

	neg := -1
	err := f.uc.SaveFilters(context.Background(), f.recruiterID, user.RoleRecruiter, profile.Filter{MinYOE: &neg})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
