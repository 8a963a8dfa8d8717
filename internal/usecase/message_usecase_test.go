package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"
	"talentswipe/internal/repository/memory"

	"github.com/google/uuid"
)

type mockBroadcaster struct {
	mu    sync.Mutex
	calls []match.Message

	// onBroadcast lets a test observe state at broadcast time.
	onBroadcast func(uuid.UUID, match.Message)
}

func (m *mockBroadcaster) BroadcastMessage(matchID uuid.UUID, msg match.Message) {
	m.mu.Lock()
	m.calls = append(m.calls, msg)
	m.mu.Unlock()
	if m.onBroadcast != nil {
		m.onBroadcast(matchID, msg)
	}
}

type messageFixture struct {
	uc          *Message
	messages    *memory.MessageRepository
	broadcaster *mockBroadcaster

	candidateID uuid.UUID
	recruiterID uuid.UUID
	matchID     uuid.UUID
}

func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()

	f := &messageFixture{
		messages:    memory.NewMessageRepository(),
		broadcaster: &mockBroadcaster{},
		candidateID: uuid.New(),
		recruiterID: uuid.New(),
		matchID:     uuid.New(),
	}

	matches := memory.NewMatchRepository()
	if err := matches.Insert(context.Background(), match.Match{
		ID:              f.matchID,
		CandidateUserID: f.candidateID,
		RecruiterUserID: f.recruiterID,
		JobID:           uuid.New(),
		CreatedAt:       time.Now().UTC(),
	}); err != nil {
		t.Fatalf("seed match: %v", err)
	}

	f.uc = NewMessageUsecase(f.messages, matches, f.broadcaster, &mockTracker{})
	return f
}

func TestSendMessage_TrimsAndBroadcasts(t *testing.T) {
	f := newMessageFixture(t)

	msg, err := f.uc.Send(context.Background(), f.matchID, f.candidateID, user.RoleCandidate, "  hello there  ")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.Body != "hello there" {
		t.Fatalf("expected trimmed body, got %q", msg.Body)
	}
	if len(f.broadcaster.calls) != 1 {
		t.Fatalf("expected 1 broadcast, got %d", len(f.broadcaster.calls))
	}
}

func TestSendMessage_PersistsBeforeBroadcast(t *testing.T) {
	f := newMessageFixture(t)

	var storedAtBroadcast int
	f.broadcaster.onBroadcast = func(matchID uuid.UUID, _ match.Message) {
		msgs, err := f.messages.ListByMatch(context.Background(), matchID, nil, 10)
		if err != nil {
			t.Errorf("list at broadcast time: %v", err)
		}
		storedAtBroadcast = len(msgs)
	}

	if _, err := f.uc.Send(context.Background(), f.matchID, f.recruiterID, user.RoleRecruiter, "hi"); err != nil {
		t.Fatalf("send: %v", err)
	}
	if storedAtBroadcast != 1 {
		t.Fatalf("message must be stored before broadcast, saw %d stored", storedAtBroadcast)
	}
}

func TestSendMessage_BodyValidation(t *testing.T) {
	f := newMessageFixture(t)

	if _, err := f.uc.Send(context.Background(), f.matchID, f.candidateID, user.RoleCandidate, "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank body: expected ErrInvalidInput, got %v", err)
	}

	long := strings.Repeat("a", MaxMessageLength+1)
	if _, err := f.uc.Send(context.Background(), f.matchID, f.candidateID, user.RoleCandidate, long); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("oversized body: expected ErrInvalidInput, got %v", err)
	}

	exact := strings.Repeat("a", MaxMessageLength)
	if _, err := f.uc.Send(context.Background(), f.matchID, f.candidateID, user.RoleCandidate, exact); err != nil {
		t.Fatalf("body at the limit should pass, got %v", err)
	}
}

func TestSendMessage_PartyChecks(t *testing.T) {
	f := newMessageFixture(t)

	if _, err := f.uc.Send(context.Background(), f.matchID, uuid.New(), user.RoleCandidate, "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("stranger: expected ErrForbidden, got %v", err)
	}
	if _, err := f.uc.Send(context.Background(), uuid.New(), f.candidateID, user.RoleCandidate, "hi"); !errors.Is(err, ErrMatchNotFound) {
		t.Fatalf("unknown match: expected ErrMatchNotFound, got %v", err)
	}
	if len(f.broadcaster.calls) != 0 {
		t.Fatal("rejected sends must not broadcast")
	}
}

func TestListMessages_AscendingWithCursor(t *testing.T) {
	f := newMessageFixture(t)

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		if err := f.messages.Insert(context.Background(), match.Message{
			ID:        uuid.New(),
			MatchID:   f.matchID,
			SenderID:  f.candidateID,
			Body:      strings.Repeat("x", i+1),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}); err != nil {
			t.Fatalf("seed message: %v", err)
		}
	}

	msgs, hasMore, err := f.uc.List(context.Background(), f.matchID, f.candidateID, user.RoleCandidate, nil, 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 3 || !hasMore {
		t.Fatalf("expected 3 messages with more available, got %d hasMore=%v", len(msgs), hasMore)
	}
	for i := 1; i < len(msgs); i++ {
		if msgs[i].CreatedAt.Before(msgs[i-1].CreatedAt) {
			t.Fatal("messages must be in ascending order")
		}
	}

	// Page older messages with the cursor.
	before := msgs[0].CreatedAt
	older, hasMore, err := f.uc.List(context.Background(), f.matchID, f.candidateID, user.RoleCandidate, &before, 3)
	if err != nil {
		t.Fatalf("list older: %v", err)
	}
	if len(older) != 2 || hasMore {
		t.Fatalf("expected the 2 remaining older messages, got %d hasMore=%v", len(older), hasMore)
	}
}

func TestListMessages_PartyOnly(t *testing.T) {
	f := newMessageFixture(t)

	_, _, err := f.uc.List(context.Background(), f.matchID, uuid.New(), user.RoleRecruiter, nil, 10)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
