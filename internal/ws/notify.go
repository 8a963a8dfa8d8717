package ws

import (
	"encoding/json"
	"log"
	"time"

	"talentswipe/internal/domain/match"

	"github.com/google/uuid"
)

const (
	EventMatchNew    = "match:new"
	EventMatchJoined = "match:joined"
	EventMatchLeft   = "match:left"
	EventMessageNew  = "message:new"
	EventTypingStart = "typing:start"
	EventTypingStop  = "typing:stop"
	EventAppError    = "app:error"
)

type matchNewEvent struct {
	Type    string    `json:"type"`
	MatchID uuid.UUID `json:"match_id"`
	Message string    `json:"message"`
}

type messagePayload struct {
	ID       uuid.UUID `json:"id"`
	MatchID  uuid.UUID `json:"match_id"`
	SenderID uuid.UUID `json:"sender_id"`
	Body     string    `json:"body"`
	TS       time.Time `json:"ts"`
}

type messageNewEvent struct {
	Type    string         `json:"type"`
	Message messagePayload `json:"message"`
}

type typingEvent struct {
	Type    string    `json:"type"`
	MatchID uuid.UUID `json:"match_id"`
	UserID  uuid.UUID `json:"user_id"`
}

type roomEvent struct {
	Type    string    `json:"type"`
	MatchID uuid.UUID `json:"match_id"`
	Room    string    `json:"room"`
}

type errorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Notifier is the push side of the matching engine. Everything here is
// best-effort: the stores stay the source of truth and failures only
// produce log lines.
type Notifier struct {
	hub    *Hub
	logger *log.Logger
}

func NewNotifier(hub *Hub, logger *log.Logger) *Notifier {
	return &Notifier{hub: hub, logger: logger}
}

// NotifyMatch pushes a match-created event to both parties' user
// channels.
func (n *Notifier) NotifyMatch(candidateUserID, recruiterUserID, matchID uuid.UUID) {
	if n == nil || n.hub == nil {
		return
	}

	payload, err := json.Marshal(matchNewEvent{
		Type:    EventMatchNew,
		MatchID: matchID,
		Message: "You have a new match!",
	})
	if err != nil {
		return
	}

	n.hub.SendToUser(candidateUserID, payload)
	n.hub.SendToUser(recruiterUserID, payload)
}

// BroadcastMessage pushes a persisted message to the match channel.
func (n *Notifier) BroadcastMessage(matchID uuid.UUID, msg match.Message) {
	if n == nil || n.hub == nil {
		return
	}

	payload, err := json.Marshal(messageNewEvent{
		Type: EventMessageNew,
		Message: messagePayload{
			ID:       msg.ID,
			MatchID:  msg.MatchID,
			SenderID: msg.SenderID,
			Body:     msg.Body,
			TS:       msg.CreatedAt,
		},
	})
	if err != nil {
		return
	}

	n.hub.Broadcast(MatchGroup(matchID), payload, nil)
}

// BroadcastTyping relays a typing indicator to the match channel,
// skipping the sender's own connection.
func (n *Notifier) BroadcastTyping(matchID, userID uuid.UUID, start bool, exclude *Client) {
	if n == nil || n.hub == nil {
		return
	}

	eventType := EventTypingStop
	if start {
		eventType = EventTypingStart
	}
	payload, err := json.Marshal(typingEvent{Type: eventType, MatchID: matchID, UserID: userID})
	if err != nil {
		return
	}

	n.hub.Broadcast(MatchGroup(matchID), payload, exclude)
}

func sendRoomEvent(c *Client, eventType string, matchID uuid.UUID) {
	payload, err := json.Marshal(roomEvent{Type: eventType, MatchID: matchID, Room: MatchGroup(matchID)})
	if err != nil {
		return
	}
	c.Send(payload)
}

func sendError(c *Client, message string) {
	payload, err := json.Marshal(errorEvent{Type: EventAppError, Message: message})
	if err != nil {
		return
	}
	c.Send(payload)
}
