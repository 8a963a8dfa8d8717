package usecase

import (
	"context"
	"time"

	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository"

	"github.com/google/uuid"
)

const (
	MinCooldownDays = 1
	MaxCooldownDays = 90
)

type CooldownUsecase interface {
	// SetCooldownDays updates the recruiter's cooldown window for
	// future unmatches only; past unmatch records keep their snapshot.
	SetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID, role user.Role, days int) error

	GetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID) (int, error)

	// IsUnderCooldown reports whether the candidate is still
	// suppressed from the recruiter's discovery feed. It never blocks
	// an explicit swipe.
	IsUnderCooldown(ctx context.Context, candidateUserID, recruiterUserID uuid.UUID) (bool, error)
}

type Cooldown struct {
	settings  repository.RecruiterSettingsRepository
	unmatches repository.UnmatchRepository
	now       func() time.Time
}

func NewCooldownUsecase(settings repository.RecruiterSettingsRepository, unmatches repository.UnmatchRepository) *Cooldown {
	return &Cooldown{settings: settings, unmatches: unmatches, now: time.Now}
}

func (u *Cooldown) SetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID, role user.Role, days int) error {
	if recruiterUserID == uuid.Nil {
		return ErrInvalidInput
	}
	if role != user.RoleRecruiter {
		return ErrForbidden
	}
	if days < MinCooldownDays || days > MaxCooldownDays {
		return ErrInvalidInput
	}
	if err := u.settings.SetCooldownDays(ctx, recruiterUserID, days); err != nil {
		return ErrInternal
	}
	return nil
}

func (u *Cooldown) GetCooldownDays(ctx context.Context, recruiterUserID uuid.UUID) (int, error) {
	days, ok, err := u.settings.GetCooldownDays(ctx, recruiterUserID)
	if err != nil {
		return 0, ErrInternal
	}
	if !ok {
		return DefaultCooldownDays, nil
	}
	return days, nil
}

func (u *Cooldown) IsUnderCooldown(ctx context.Context, candidateUserID, recruiterUserID uuid.UUID) (bool, error) {
	rec, ok, err := u.unmatches.FindLatest(ctx, candidateUserID, recruiterUserID)
	if err != nil {
		return false, ErrInternal
	}
	if !ok {
		return false, nil
	}
	return rec.UnderCooldown(u.now().UTC()), nil
}
