package ws

import (
	"encoding/json"
	"testing"
	"time"

	"talentswipe/internal/domain/match"
	"talentswipe/internal/domain/user"

	"github.com/google/uuid"
)

func TestNotifyMatch_ReachesBothParties(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	n := NewNotifier(hub, nil)

	candidate := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	recruiter := NewClient(hub, nil, uuid.New(), user.RoleRecruiter, nil, nil)
	hub.Register(candidate)
	hub.Register(recruiter)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })
	hub.Join(candidate, UserGroup(candidate.UserID))
	hub.Join(recruiter, UserGroup(recruiter.UserID))

	matchID := uuid.New()
	n.NotifyMatch(candidate.UserID, recruiter.UserID, matchID)

	for _, c := range []*Client{candidate, recruiter} {
		var evt matchNewEvent
		if err := json.Unmarshal(recvPayload(t, c), &evt); err != nil {
			t.Fatalf("decode event: %v", err)
		}
		if evt.Type != EventMatchNew || evt.MatchID != matchID {
			t.Fatalf("unexpected event %+v", evt)
		}
	}
}

func TestBroadcastMessage_ReachesMatchChannel(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()
	n := NewNotifier(hub, nil)

	a := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	hub.Register(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	matchID := uuid.New()
	hub.Join(a, MatchGroup(matchID))

	msg := match.Message{
		ID:        uuid.New(),
		MatchID:   matchID,
		SenderID:  uuid.New(),
		Body:      "hello",
		CreatedAt: time.Now().UTC(),
	}
	n.BroadcastMessage(matchID, msg)

	var evt messageNewEvent
	if err := json.Unmarshal(recvPayload(t, a), &evt); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if evt.Type != EventMessageNew || evt.Message.Body != "hello" || evt.Message.ID != msg.ID {
		t.Fatalf("unexpected event %+v", evt)
	}
}
