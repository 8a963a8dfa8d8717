// Package analytics emits product events on a strictly fire-and-forget
// path: tracking never blocks a request and a full queue drops the
// event with a log line instead of applying backpressure.
package analytics

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventSwipeMade          = "swipe_made"
	EventMatchCreated       = "match_created"
	EventMessageSent        = "message_sent"
	EventCandidateUnmatched = "candidate_unmatched"
)

type Event struct {
	Name       string         `json:"event"`
	UserID     uuid.UUID      `json:"user_id"`
	Properties map[string]any `json:"properties,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Sink is where drained events land. The Redis list implementation is
// the production sink; tests substitute a capture.
type Sink interface {
	RPush(ctx context.Context, key string, payload []byte) error
}

type Tracker struct {
	queue  chan Event
	sink   Sink
	key    string
	logger *log.Logger

	closeOnce sync.Once
	done      chan struct{}
	drained   chan struct{}
}

func NewTracker(sink Sink, streamKey string, queueSize int, logger *log.Logger) *Tracker {
	if queueSize <= 0 {
		queueSize = 1024
	}
	t := &Tracker{
		queue:   make(chan Event, queueSize),
		sink:    sink,
		key:     streamKey,
		logger:  logger,
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
	go t.run()
	return t
}

// Track enqueues an event without ever blocking the caller.
func (t *Tracker) Track(name string, userID uuid.UUID, props map[string]any) {
	if t == nil {
		return
	}
	evt := Event{Name: name, UserID: userID, Properties: props, Timestamp: time.Now().UTC()}

	select {
	case t.queue <- evt:
	case <-t.done:
	default:
		if t.logger != nil {
			t.logger.Printf("analytics event dropped | event=%s reason=queue_full", name)
		}
	}
}

// QueueDepth reports pending events; surfaced by the periodic
// scheduler job for operational visibility.
func (t *Tracker) QueueDepth() int {
	if t == nil {
		return 0
	}
	return len(t.queue)
}

// Close stops accepting events and flushes what is already queued.
func (t *Tracker) Close() {
	if t == nil {
		return
	}
	t.closeOnce.Do(func() {
		close(t.done)
		<-t.drained
	})
}

func (t *Tracker) run() {
	defer close(t.drained)

	for {
		select {
		case evt := <-t.queue:
			t.push(evt)
		case <-t.done:
			for {
				select {
				case evt := <-t.queue:
					t.push(evt)
				default:
					return
				}
			}
		}
	}
}

func (t *Tracker) push(evt Event) {
	if t.sink == nil {
		return
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		if t.logger != nil {
			t.logger.Printf("analytics event dropped | event=%s error=%v", evt.Name, err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := t.sink.RPush(ctx, t.key, payload); err != nil {
		if t.logger != nil {
			t.logger.Printf("analytics sink error | event=%s error=%v", evt.Name, err)
		}
	}
}
