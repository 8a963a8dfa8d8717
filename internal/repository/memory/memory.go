// Package memory provides in-memory implementations of the repository
// interfaces. They enforce the same uniqueness guarantees as the
// Postgres implementations and back the tests plus development mode
// without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"talentswipe/internal/domain/job"
	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/profile"
	"talentswipe/internal/domain/swipe"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository"

	"github.com/google/uuid"
)

type SwipeRepository struct {
	mu     sync.RWMutex
	swipes []swipe.Swipe
}

func NewSwipeRepository() *SwipeRepository {
	return &SwipeRepository{}
}

func (r *SwipeRepository) Insert(_ context.Context, s swipe.Swipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.swipes {
		if existing.ActorUserID == s.ActorUserID && existing.TargetType == s.TargetType && existing.TargetID == s.TargetID {
			return repository.ErrDuplicateKey
		}
	}
	r.swipes = append(r.swipes, s)
	return nil
}

func (r *SwipeRepository) FindRightSwipe(_ context.Context, actorUserID uuid.UUID, targetType swipe.TargetType, targetID uuid.UUID) (swipe.Swipe, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.swipes {
		if s.ActorUserID == actorUserID && s.TargetType == targetType && s.TargetID == targetID && s.Direction == swipe.DirectionRight {
			return s, true, nil
		}
	}
	return swipe.Swipe{}, false, nil
}

func (r *SwipeRepository) FindRightSwipesOnJobs(_ context.Context, actorUserID uuid.UUID, jobIDs []uuid.UUID) ([]swipe.Swipe, error) {
	ids := make(map[uuid.UUID]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		ids[id] = struct{}{}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []swipe.Swipe
	for _, s := range r.swipes {
		if s.ActorUserID != actorUserID || s.TargetType != swipe.TargetJob || s.Direction != swipe.DirectionRight {
			continue
		}
		if _, ok := ids[s.TargetID]; ok {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *SwipeRepository) ListByActor(_ context.Context, actorUserID uuid.UUID, targetType *swipe.TargetType, limit, offset int) ([]swipe.Swipe, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []swipe.Swipe
	for _, s := range r.swipes {
		if s.ActorUserID != actorUserID {
			continue
		}
		if targetType != nil && s.TargetType != *targetType {
			continue
		}
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]swipe.Swipe(nil), all[offset:end]...), total, nil
}

func (r *SwipeRepository) Stats(_ context.Context, actorUserID uuid.UUID, dayStart time.Time) (swipe.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var st swipe.Stats
	for _, s := range r.swipes {
		if s.ActorUserID != actorUserID {
			continue
		}
		st.Total++
		if !s.CreatedAt.Before(dayStart) {
			st.Today++
		}
		if s.Direction == swipe.DirectionRight {
			st.RightSwipes++
		} else {
			st.LeftSwipes++
		}
	}
	return st, nil
}

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
}

func NewMatchRepository() *MatchRepository {
	return &MatchRepository{}
}

func (r *MatchRepository) Insert(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.matches {
		if existing.CandidateUserID == m.CandidateUserID && existing.JobID == m.JobID {
			return repository.ErrDuplicateKey
		}
	}
	r.matches = append(r.matches, m)
	return nil
}

func (r *MatchRepository) FindByID(_ context.Context, id uuid.UUID) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.ID == id {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r *MatchRepository) FindByPair(_ context.Context, candidateUserID, jobID uuid.UUID) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.CandidateUserID == candidateUserID && m.JobID == jobID {
			return m, true, nil
		}
	}
	return match.Match{}, false, nil
}

func (r *MatchRepository) ListForUser(_ context.Context, userID uuid.UUID, role user.Role, limit, offset int) ([]match.Match, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []match.Match
	for _, m := range r.matches {
		if m.HasParty(userID, role) {
			all = append(all, m)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return append([]match.Match(nil), all[offset:end]...), total, nil
}

func (r *MatchRepository) CandidateIDsForRecruiter(_ context.Context, recruiterUserID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []uuid.UUID
	for _, m := range r.matches {
		if m.RecruiterUserID == recruiterUserID {
			out = append(out, m.CandidateUserID)
		}
	}
	return out, nil
}

func (r *MatchRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.matches[:0]
	for _, m := range r.matches {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	r.matches = kept
	return nil
}

func (r *MatchRepository) Stats(_ context.Context, userID uuid.UUID, role user.Role, dayStart, weekStart time.Time) (match.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var st match.Stats
	for _, m := range r.matches {
		if !m.HasParty(userID, role) {
			continue
		}
		st.Total++
		if !m.CreatedAt.Before(dayStart) {
			st.Today++
		}
		if !m.CreatedAt.Before(weekStart) {
			st.ThisWeek++
		}
	}
	return st, nil
}

type UnmatchRepository struct {
	mu      sync.RWMutex
	records []match.UnmatchRecord
}

func NewUnmatchRepository() *UnmatchRepository {
	return &UnmatchRepository{}
}

func (r *UnmatchRepository) Insert(_ context.Context, rec match.UnmatchRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
	return nil
}

func (r *UnmatchRepository) FindLatest(_ context.Context, candidateUserID, recruiterUserID uuid.UUID) (match.UnmatchRecord, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest match.UnmatchRecord
	found := false
	for _, rec := range r.records {
		if rec.CandidateUserID != candidateUserID || rec.RecruiterUserID != recruiterUserID {
			continue
		}
		if !found || rec.CreatedAt.After(latest.CreatedAt) {
			latest = rec
			found = true
		}
	}
	return latest, found, nil
}

type RecruiterSettingsRepository struct {
	mu       sync.RWMutex
	cooldown map[uuid.UUID]int
	filters  map[uuid.UUID]profile.Filter
}

func NewRecruiterSettingsRepository() *RecruiterSettingsRepository {
	return &RecruiterSettingsRepository{
		cooldown: make(map[uuid.UUID]int),
		filters:  make(map[uuid.UUID]profile.Filter),
	}
}

func (r *RecruiterSettingsRepository) GetCooldownDays(_ context.Context, recruiterUserID uuid.UUID) (int, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	days, ok := r.cooldown[recruiterUserID]
	return days, ok, nil
}

func (r *RecruiterSettingsRepository) SetCooldownDays(_ context.Context, recruiterUserID uuid.UUID, days int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cooldown[recruiterUserID] = days
	return nil
}

func (r *RecruiterSettingsRepository) GetFeedFilters(_ context.Context, recruiterUserID uuid.UUID) (profile.Filter, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.filters[recruiterUserID]
	return f, ok, nil
}

func (r *RecruiterSettingsRepository) SetFeedFilters(_ context.Context, recruiterUserID uuid.UUID, f profile.Filter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.filters[recruiterUserID] = f
	return nil
}

type JobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]job.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[uuid.UUID]job.Job)}
}

// Put seeds a job; jobs are externally owned so there is no richer
// write surface here.
func (r *JobRepository) Put(j job.Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = j
}

func (r *JobRepository) FindByID(_ context.Context, id uuid.UUID) (job.Job, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	return j, ok, nil
}

func (r *JobRepository) ListOpenByRecruiter(_ context.Context, recruiterUserID uuid.UUID) ([]job.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []job.Job
	for _, j := range r.jobs {
		if j.RecruiterID == recruiterUserID && j.Open() {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]profile.CandidateProfile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[uuid.UUID]profile.CandidateProfile)}
}

func (r *ProfileRepository) Put(p profile.CandidateProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

func (r *ProfileRepository) FindByID(_ context.Context, id uuid.UUID) (profile.CandidateProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[id]
	return p, ok, nil
}

func (r *ProfileRepository) FindByUserID(_ context.Context, userID uuid.UUID) (profile.CandidateProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, true, nil
		}
	}
	return profile.CandidateProfile{}, false, nil
}

func (r *ProfileRepository) Search(_ context.Context, f profile.Filter, limit, offset int) ([]profile.CandidateProfile, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []profile.CandidateProfile
	for _, p := range r.profiles {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type MessageRepository struct {
	mu       sync.RWMutex
	messages []match.Message
}

func NewMessageRepository() *MessageRepository {
	return &MessageRepository{}
}

func (r *MessageRepository) Insert(_ context.Context, m match.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

func (r *MessageRepository) ListByMatch(_ context.Context, matchID uuid.UUID, before *time.Time, limit int) ([]match.Message, error) {
	if limit <= 0 {
		limit = 50
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []match.Message
	for _, m := range r.messages {
		if m.MatchID != matchID {
			continue
		}
		if before != nil && !m.CreatedAt.Before(*before) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
