package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"talentswipe/internal/domain/profile"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository"

	"github.com/google/uuid"
)

const (
	feedLimit    = 50
	feedPageSize = 100
	feedCacheTTL = 30 * time.Second
)

type DiscoveryUsecase interface {
	// CandidateFeed returns candidate profiles for a recruiter to
	// swipe on, excluding already-matched and under-cooldown
	// candidates. Query filters override saved filters field-wise.
	CandidateFeed(ctx context.Context, recruiterUserID uuid.UUID, role user.Role, override profile.Filter) ([]profile.CandidateProfile, error)

	GetFilters(ctx context.Context, recruiterUserID uuid.UUID, role user.Role) (profile.Filter, error)
	SaveFilters(ctx context.Context, recruiterUserID uuid.UUID, role user.Role, f profile.Filter) error
}

type Discovery struct {
	profiles repository.ProfileRepository
	matches  repository.MatchRepository
	settings repository.RecruiterSettingsRepository
	cooldown CooldownUsecase

	cache  FeedCache
	logger *log.Logger
}

func NewDiscoveryUsecase(
	profiles repository.ProfileRepository,
	matches repository.MatchRepository,
	settings repository.RecruiterSettingsRepository,
	cooldown CooldownUsecase,
	cache FeedCache,
	logger *log.Logger,
) *Discovery {
	return &Discovery{
		profiles: profiles,
		matches:  matches,
		settings: settings,
		cooldown: cooldown,
		cache:    cache,
		logger:   logger,
	}
}

func (u *Discovery) CandidateFeed(ctx context.Context, recruiterUserID uuid.UUID, role user.Role, override profile.Filter) ([]profile.CandidateProfile, error) {
	if recruiterUserID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	if role != user.RoleRecruiter {
		return nil, ErrForbidden
	}

	f := override
	if saved, ok, err := u.settings.GetFeedFilters(ctx, recruiterUserID); err == nil && ok {
		f = mergeFilters(saved, override)
	}

	cacheKey := feedCacheKey(recruiterUserID, f)
	if u.cache != nil {
		var cached []profile.CandidateProfile
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	matchedIDs, err := u.matches.CandidateIDsForRecruiter(ctx, recruiterUserID)
	if err != nil {
		return nil, ErrInternal
	}
	matched := make(map[uuid.UUID]struct{}, len(matchedIDs))
	for _, id := range matchedIDs {
		matched[id] = struct{}{}
	}

	// Page through matching profiles until the feed fills or the
	// repository runs out; exclusions must not shorten the feed while
	// eligible older candidates remain.
	out := make([]profile.CandidateProfile, 0, feedLimit)
	for offset := 0; len(out) < feedLimit; offset += feedPageSize {
		page, err := u.profiles.Search(ctx, f, feedPageSize, offset)
		if err != nil {
			return nil, ErrInternal
		}
		for _, p := range page {
			if _, ok := matched[p.UserID]; ok {
				continue
			}
			under, err := u.cooldown.IsUnderCooldown(ctx, p.UserID, recruiterUserID)
			if err != nil {
				return nil, err
			}
			if under {
				continue
			}
			out = append(out, p)
			if len(out) >= feedLimit {
				break
			}
		}
		if len(page) < feedPageSize {
			break
		}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, out, feedCacheTTL); err != nil && u.logger != nil {
			u.logger.Printf("feed cache write failed | recruiter=%s error=%v", recruiterUserID, err)
		}
	}
	return out, nil
}

func (u *Discovery) GetFilters(ctx context.Context, recruiterUserID uuid.UUID, role user.Role) (profile.Filter, error) {
	if role != user.RoleRecruiter {
		return profile.Filter{}, ErrForbidden
	}
	f, _, err := u.settings.GetFeedFilters(ctx, recruiterUserID)
	if err != nil {
		return profile.Filter{}, ErrInternal
	}
	return f, nil
}

func (u *Discovery) SaveFilters(ctx context.Context, recruiterUserID uuid.UUID, role user.Role, f profile.Filter) error {
	if role != user.RoleRecruiter {
		return ErrForbidden
	}
	if f.MinYOE != nil && *f.MinYOE < 0 {
		return ErrInvalidInput
	}
	if f.MaxYOE != nil && *f.MaxYOE < 0 {
		return ErrInvalidInput
	}
	if err := u.settings.SetFeedFilters(ctx, recruiterUserID, f); err != nil {
		return ErrInternal
	}
	if u.cache != nil {
		_ = u.cache.DeleteByPattern(ctx, feedCachePattern(recruiterUserID))
	}
	return nil
}

// mergeFilters overlays query-time filters on saved ones, field-wise,
// with the query winning when set.
func mergeFilters(saved, override profile.Filter) profile.Filter {
	merged := saved
	if len(override.Skills) > 0 {
		merged.Skills = override.Skills
	}
	if override.Location != "" {
		merged.Location = override.Location
	}
	if override.MinYOE != nil {
		merged.MinYOE = override.MinYOE
	}
	if override.MaxYOE != nil {
		merged.MaxYOE = override.MaxYOE
	}
	return merged
}

func feedCacheKey(recruiterUserID uuid.UUID, f profile.Filter) string {
	skills := append([]string(nil), f.Skills...)
	sort.Strings(skills)

	var b strings.Builder
	b.WriteString(strings.Join(skills, ","))
	b.WriteString("|")
	b.WriteString(strings.ToLower(f.Location))
	if f.MinYOE != nil {
		fmt.Fprintf(&b, "|min=%d", *f.MinYOE)
	}
	if f.MaxYOE != nil {
		fmt.Fprintf(&b, "|max=%d", *f.MaxYOE)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return fmt.Sprintf("feed:%s:%s", recruiterUserID, hex.EncodeToString(sum[:8]))
}

func feedCachePattern(recruiterUserID uuid.UUID) string {
	return fmt.Sprintf("feed:%s:*", recruiterUserID)
}
