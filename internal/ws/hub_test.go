package ws

import (
	"testing"
	"time"

	"talentswipe/internal/domain/user"

	"github.com/google/uuid"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func recvPayload(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case p := <-c.send:
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("no payload delivered")
		return nil
	}
}

func expectNoPayload(t *testing.T, c *Client) {
	t.Helper()
	select {
	case p := <-c.send:
		t.Fatalf("unexpected payload %q", p)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_GroupBroadcast(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	b := NewClient(hub, nil, uuid.New(), user.RoleRecruiter, nil, nil)
	c := NewClient(hub, nil, uuid.New(), user.RoleRecruiter, nil, nil)

	hub.Register(a)
	hub.Register(b)
	hub.Register(c)
	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	matchID := uuid.New()
	hub.Join(a, MatchGroup(matchID))
	hub.Join(b, MatchGroup(matchID))

	hub.Broadcast(MatchGroup(matchID), []byte("hello"), nil)

	if got := recvPayload(t, a); string(got) != "hello" {
		t.Fatalf("client a got %q", got)
	}
	if got := recvPayload(t, b); string(got) != "hello" {
		t.Fatalf("client b got %q", got)
	}
	expectNoPayload(t, c)
}

func TestHub_BroadcastExcludesSender(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	b := NewClient(hub, nil, uuid.New(), user.RoleRecruiter, nil, nil)
	hub.Register(a)
	hub.Register(b)
	waitFor(t, func() bool { return hub.ClientCount() == 2 })

	group := MatchGroup(uuid.New())
	hub.Join(a, group)
	hub.Join(b, group)

	hub.Broadcast(group, []byte("typing"), a)

	if got := recvPayload(t, b); string(got) != "typing" {
		t.Fatalf("client b got %q", got)
	}
	expectNoPayload(t, a)
}

func TestHub_SendToUser(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	userID := uuid.New()
	first := NewClient(hub, nil, userID, user.RoleCandidate, nil, nil)
	second := NewClient(hub, nil, userID, user.RoleCandidate, nil, nil)
	other := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)

	hub.Register(first)
	hub.Register(second)
	hub.Register(other)
	waitFor(t, func() bool { return hub.ClientCount() == 3 })

	// Every connection joins its user group on connect; mirror that.
	hub.Join(first, UserGroup(first.UserID))
	hub.Join(second, UserGroup(second.UserID))
	hub.Join(other, UserGroup(other.UserID))

	hub.SendToUser(userID, []byte("match"))

	if got := recvPayload(t, first); string(got) != "match" {
		t.Fatalf("first connection got %q", got)
	}
	if got := recvPayload(t, second); string(got) != "match" {
		t.Fatalf("second connection got %q", got)
	}
	expectNoPayload(t, other)
}

func TestHub_UnregisterCleansGroups(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	hub.Register(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	group := MatchGroup(uuid.New())
	hub.Join(a, group)
	if hub.GroupSize(group) != 1 {
		t.Fatal("expected group membership after join")
	}

	hub.Unregister(a)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if hub.GroupSize(group) != 0 {
		t.Fatal("group membership should be cleared on unregister")
	}
}

func TestHub_LeaveGroup(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	hub.Register(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	group := MatchGroup(uuid.New())
	hub.Join(a, group)
	if !hub.InGroup(a, group) {
		t.Fatal("expected membership after join")
	}

	hub.Leave(a, group)
	if hub.InGroup(a, group) {
		t.Fatal("expected no membership after leave")
	}

	hub.Broadcast(group, []byte("late"), nil)
	expectNoPayload(t, a)
}

func TestHub_SendAfterOverflowUnregister(t *testing.T) {
	hub := NewHub(nil)
	go hub.Run()

	a := NewClient(hub, nil, uuid.New(), user.RoleCandidate, nil, nil)
	hub.Register(a)
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	group := MatchGroup(uuid.New())
	hub.Join(a, group)

	// Nobody drains a.send, so one more delivery overflows the buffer
	// and the hub unregisters the slow client.
	for i := 0; i < sendBufferSize; i++ {
		a.Send([]byte("fill"))
	}
	hub.Broadcast(group, []byte("overflow"), nil)
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	// The read pump may still be mid-frame when the hub drops the
	// client; a late direct send must be a silent no-op, not a panic.
	a.Send([]byte("late"))

	select {
	case <-a.done:
	default:
		t.Fatal("expected done to be closed on unregister")
	}
}
