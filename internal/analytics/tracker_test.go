package analytics

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
)

type captureSink struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (s *captureSink) RPush(_ context.Context, _ string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payloads = append(s.payloads, append([]byte(nil), payload...))
	return nil
}

func (s *captureSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.payloads)
}

func TestTracker_DeliversToSink(t *testing.T) {
	sink := &captureSink{}
	tr := NewTracker(sink, "analytics:events", 16, nil)

	userID := uuid.New()
	tr.Track(EventSwipeMade, userID, map[string]any{"direction": "right"})
	tr.Close()

	if sink.count() != 1 {
		t.Fatalf("expected 1 delivered event, got %d", sink.count())
	}

	var evt Event
	sink.mu.Lock()
	payload := sink.payloads[0]
	sink.mu.Unlock()
	if err := json.Unmarshal(payload, &evt); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if evt.Name != EventSwipeMade || evt.UserID != userID {
		t.Fatalf("unexpected event %+v", evt)
	}
	if evt.Properties["direction"] != "right" {
		t.Fatalf("unexpected properties %+v", evt.Properties)
	}
}

type blockingSink struct {
	release chan struct{}
}

func (s *blockingSink) RPush(context.Context, string, []byte) error {
	<-s.release
	return nil
}

func TestTracker_NeverBlocksCaller(t *testing.T) {
	sink := &blockingSink{release: make(chan struct{})}
	tr := NewTracker(sink, "analytics:events", 2, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		// Far more events than the queue holds; overflow is dropped.
		for i := 0; i < 100; i++ {
			tr.Track(EventMessageSent, uuid.New(), nil)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Track blocked on a full queue")
	}

	close(sink.release)
	tr.Close()
}

func TestTracker_CloseFlushesQueue(t *testing.T) {
	sink := &captureSink{}
	tr := NewTracker(sink, "analytics:events", 64, nil)

	for i := 0; i < 10; i++ {
		tr.Track(EventMatchCreated, uuid.New(), nil)
	}
	tr.Close()

	if sink.count() != 10 {
		t.Fatalf("expected all 10 events flushed on close, got %d", sink.count())
	}

	// After close, tracking is a no-op.
	tr.Track(EventMatchCreated, uuid.New(), nil)
	if sink.count() != 10 {
		t.Fatal("events after close must be discarded")
	}
}
