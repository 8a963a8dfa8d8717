package ws

import (
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
)

// Group keys for the two logical channels: per-user for match and
// cross-cutting notifications, per-match for the message stream.
func UserGroup(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID)
}

func MatchGroup(matchID uuid.UUID) string {
	return fmt.Sprintf("match:%s", matchID)
}

type groupMessage struct {
	group   string
	payload []byte
	exclude *Client
}

// Hub tracks live connections and their group memberships. Delivery is
// at-most-once: a slow client's buffer overflowing unregisters it, and
// a full broadcast queue drops the event with a log line. Clients
// re-derive state from the stores on reconnect.
type Hub struct {
	clients map[*Client]bool
	groups  map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan groupMessage

	mutex  sync.RWMutex
	logger *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		groups:     make(map[string]map[*Client]bool),
		register:   make(chan *Client, 128),
		unregister: make(chan *Client, 128),
		broadcast:  make(chan groupMessage, 1024),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			h.clients[client] = true
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS connected | user=%s total_clients=%d", client.UserID, total)
			}

		case client := <-h.unregister:
			if client == nil {
				continue
			}
			h.mutex.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				for group := range client.groups {
					h.removeFromGroup(client, group)
				}
				close(client.done)
			}
			total := len(h.clients)
			h.mutex.Unlock()
			if h.logger != nil {
				h.logger.Printf("WS disconnected | user=%s total_clients=%d", client.UserID, total)
			}

		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

func (h *Hub) deliver(msg groupMessage) {
	h.mutex.RLock()
	members := make([]*Client, 0, len(h.groups[msg.group]))
	for c := range h.groups[msg.group] {
		if c != msg.exclude {
			members = append(members, c)
		}
	}
	h.mutex.RUnlock()

	for _, client := range members {
		select {
		case client.send <- msg.payload:
		default:
			h.Unregister(client)
		}
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	h.register <- client
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.unregister <- client:
	default:
	}
}

// Join adds the client to a group. Membership authorization (match
// party checks) happens in the frame handler before this is called.
func (h *Hub) Join(client *Client, group string) {
	if h == nil || client == nil || group == "" {
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if h.groups[group] == nil {
		h.groups[group] = make(map[*Client]bool)
	}
	h.groups[group][client] = true
	client.groups[group] = true
}

func (h *Hub) Leave(client *Client, group string) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.removeFromGroup(client, group)
}

// removeFromGroup requires h.mutex held.
func (h *Hub) removeFromGroup(client *Client, group string) {
	if members, ok := h.groups[group]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(h.groups, group)
		}
	}
	delete(client.groups, group)
}

func (h *Hub) InGroup(client *Client, group string) bool {
	if h == nil || client == nil {
		return false
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return client.groups[group]
}

// Broadcast queues a payload for every current member of the group,
// optionally excluding one client (typing relays skip the sender).
func (h *Hub) Broadcast(group string, payload []byte, exclude *Client) {
	if h == nil {
		return
	}
	select {
	case h.broadcast <- groupMessage{group: group, payload: payload, exclude: exclude}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS broadcast dropped | group=%s reason=buffer_full", group)
		}
	}
}

// SendToUser pushes to every active connection of one user.
func (h *Hub) SendToUser(userID uuid.UUID, payload []byte) {
	h.Broadcast(UserGroup(userID), payload, nil)
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) GroupSize(group string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.groups[group])
}
