package usecase

import (
	"context"
	"strings"
	"time"

	"talentswipe/internal/analytics"
	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository"

	"github.com/google/uuid"
)

const MaxMessageLength = 2000

type MessageUsecase interface {
	// Send persists the message, then broadcasts it to the match
	// channel. Persistence always happens first so a client reloading
	// history never misses what was broadcast.
	Send(ctx context.Context, matchID, senderID uuid.UUID, role user.Role, body string) (match.Message, error)

	// List returns up to limit messages in ascending order, optionally
	// only those before the cursor, plus whether more remain.
	List(ctx context.Context, matchID, requesterID uuid.UUID, role user.Role, before *time.Time, limit int) ([]match.Message, bool, error)
}

type Message struct {
	messages repository.MessageRepository
	matches  repository.MatchRepository

	broadcaster MessageBroadcaster
	tracker     EventTracker
	now         func() time.Time
}

func NewMessageUsecase(
	messages repository.MessageRepository,
	matches repository.MatchRepository,
	broadcaster MessageBroadcaster,
	tracker EventTracker,
) *Message {
	return &Message{
		messages:    messages,
		matches:     matches,
		broadcaster: broadcaster,
		tracker:     tracker,
		now:         time.Now,
	}
}

func (u *Message) Send(ctx context.Context, matchID, senderID uuid.UUID, role user.Role, body string) (match.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" || len(body) > MaxMessageLength {
		return match.Message{}, ErrInvalidInput
	}

	if err := u.requireParty(ctx, matchID, senderID, role); err != nil {
		return match.Message{}, err
	}

	msg := match.Message{
		ID:        uuid.New(),
		MatchID:   matchID,
		SenderID:  senderID,
		Body:      body,
		CreatedAt: u.now().UTC(),
	}
	if err := u.messages.Insert(ctx, msg); err != nil {
		return match.Message{}, ErrInternal
	}

	if u.tracker != nil {
		u.tracker.Track(analytics.EventMessageSent, senderID, map[string]any{
			"match_id": matchID.String(),
			"length":   len(body),
		})
	}
	if u.broadcaster != nil {
		u.broadcaster.BroadcastMessage(matchID, msg)
	}
	return msg, nil
}

func (u *Message) List(ctx context.Context, matchID, requesterID uuid.UUID, role user.Role, before *time.Time, limit int) ([]match.Message, bool, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	if err := u.requireParty(ctx, matchID, requesterID, role); err != nil {
		return nil, false, err
	}

	msgs, err := u.messages.ListByMatch(ctx, matchID, before, limit)
	if err != nil {
		return nil, false, ErrInternal
	}
	hasMore := len(msgs) == limit

	// Repository returns newest first; chat renders oldest first.
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, hasMore, nil
}

func (u *Message) requireParty(ctx context.Context, matchID, userID uuid.UUID, role user.Role) error {
	m, ok, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		return ErrInternal
	}
	if !ok {
		return ErrMatchNotFound
	}
	if !m.HasParty(userID, role) {
		return ErrForbidden
	}
	return nil
}
