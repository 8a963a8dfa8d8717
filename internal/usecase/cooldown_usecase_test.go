package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository/memory"

	"github.com/google/uuid"
)

func TestSetCooldownDays_Bounds(t *testing.T) {
	uc := NewCooldownUsecase(memory.NewRecruiterSettingsRepository(), memory.NewUnmatchRepository())
	recruiterID := uuid.New()

	for _, days := range []int{0, -1, 91, 1000} {
		err := uc.SetCooldownDays(context.Background(), recruiterID, user.RoleRecruiter, days)
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("days=%d: expected ErrInvalidInput, got %v", days, err)
		}
	}
	for _, days := range []int{1, 30, 90} {
		if err := uc.SetCooldownDays(context.Background(), recruiterID, user.RoleRecruiter, days); err != nil {
			t.Errorf("days=%d: unexpected error %v", days, err)
		}
	}
}

func TestSetCooldownDays_RecruiterOnly(t *testing.T) {
	uc := NewCooldownUsecase(memory.NewRecruiterSettingsRepository(), memory.NewUnmatchRepository())

	err := uc.SetCooldownDays(context.Background(), uuid.New(), user.RoleCandidate, 30)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGetCooldownDays_DefaultWhenUnset(t *testing.T) {
	uc := NewCooldownUsecase(memory.NewRecruiterSettingsRepository(), memory.NewUnmatchRepository())

	days, err := uc.GetCooldownDays(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if days != DefaultCooldownDays {
		t.Fatalf("expected default %d, got %d", DefaultCooldownDays, days)
	}
}

func TestIsUnderCooldown(t *testing.T) {
	unmatches := memory.NewUnmatchRepository()
	uc := NewCooldownUsecase(memory.NewRecruiterSettingsRepository(), unmatches)

	candidateID := uuid.New()
	recruiterID := uuid.New()

	under, err := uc.IsUnderCooldown(context.Background(), candidateID, recruiterID)
	if err != nil || under {
		t.Fatalf("no record: under=%v err=%v", under, err)
	}

	created := time.Now().UTC().Add(-5 * 24 * time.Hour)
	if err := unmatches.Insert(context.Background(), match.UnmatchRecord{
		ID:              uuid.New(),
		CandidateUserID: candidateID,
		RecruiterUserID: recruiterID,
		CooldownDays:    10,
		CreatedAt:       created,
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	under, err = uc.IsUnderCooldown(context.Background(), candidateID, recruiterID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !under {
		t.Fatal("day 5 of a 10 day window should suppress")
	}

	uc.now = func() time.Time { return created.Add(10 * 24 * time.Hour) }
	under, err = uc.IsUnderCooldown(context.Background(), candidateID, recruiterID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if under {
		t.Fatal("window is half-open; exactly at expiry must not suppress")
	}
}

// A later setting change never rewrites the snapshot on an existing
// record.
func TestIsUnderCooldown_NotRetroactive(t *testing.T) {
	unmatches := memory.NewUnmatchRepository()
	settings := memory.NewRecruiterSettingsRepository()
	uc := NewCooldownUsecase(settings, unmatches)

	candidateID := uuid.New()
	recruiterID := uuid.New()

	created := time.Now().UTC().Add(-15 * 24 * time.Hour)
	if err := unmatches.Insert(context.Background(), match.UnmatchRecord{
		ID:              uuid.New(),
		CandidateUserID: candidateID,
		RecruiterUserID: recruiterID,
		CooldownDays:    10,
		CreatedAt:       created,
	}); err != nil {
		t.Fatalf("seed record: %v", err)
	}

	if err := uc.SetCooldownDays(context.Background(), recruiterID, user.RoleRecruiter, 90); err != nil {
		t.Fatalf("set cooldown: %v", err)
	}

	under, err := uc.IsUnderCooldown(context.Background(), candidateID, recruiterID)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if under {
		t.Fatal("expired 10 day snapshot must stay expired after raising the setting")
	}
}
