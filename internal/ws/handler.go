package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"talentswipe/internal/pkg/jwt"
	"talentswipe/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const frameHandleTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type clientFrame struct {
	Type    string    `json:"type"`
	MatchID uuid.UUID `json:"match_id"`
	Body    string    `json:"body"`
}

type Handler struct {
	hub      *Hub
	notifier *Notifier
	jwt      jwt.Service
	matches  usecase.MatchUsecase
	messages usecase.MessageUsecase
	logger   *log.Logger
}

func NewHandler(hub *Hub, notifier *Notifier, jwtSvc jwt.Service, matches usecase.MatchUsecase, messages usecase.MessageUsecase, logger *log.Logger) *Handler {
	return &Handler{
		hub:      hub,
		notifier: notifier,
		jwt:      jwtSvc,
		matches:  matches,
		messages: messages,
		logger:   logger,
	}
}

// HandleWS authenticates the connection, joins the client to its own
// user channel, and starts the pumps. Match channels are joined
// explicitly via join:match frames after a party check.
func (h *Handler) HandleWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	claims, ok := h.authenticate(c)
	if !ok {
		return fiber.ErrUnauthorized
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("WS upgrade error | error=%v", err)
			}
			return
		}

		client := NewClient(h.hub, conn, claims.UserID, claims.Role, h.handleFrame, h.logger)
		h.hub.Register(client)
		h.hub.Join(client, UserGroup(claims.UserID))

		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func (h *Handler) authenticate(c fiber.Ctx) (jwt.Claims, bool) {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		auth := strings.TrimSpace(c.Get("Authorization"))
		if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
			token = strings.TrimSpace(after)
		}
	}
	if token == "" {
		return jwt.Claims{}, false
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil || h.jwt.IsRefreshToken(claims) {
		return jwt.Claims{}, false
	}
	return claims, true
}

func (h *Handler) handleFrame(c *Client, data []byte) {
	var frame clientFrame
	if err := json.Unmarshal(data, &frame); err != nil {
		sendError(c, "malformed frame")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), frameHandleTimeout)
	defer cancel()

	switch frame.Type {
	case "join:match":
		h.joinMatch(ctx, c, frame.MatchID)
	case "leave:match":
		h.hub.Leave(c, MatchGroup(frame.MatchID))
		sendRoomEvent(c, EventMatchLeft, frame.MatchID)
	case "message:send":
		h.sendMessage(ctx, c, frame)
	case "typing:start":
		h.relayTyping(c, frame.MatchID, true)
	case "typing:stop":
		h.relayTyping(c, frame.MatchID, false)
	default:
		sendError(c, "unknown frame type")
	}
}

func (h *Handler) joinMatch(ctx context.Context, c *Client, matchID uuid.UUID) {
	isParty, err := h.matches.IsParty(ctx, matchID, c.UserID, c.Role)
	if err != nil {
		sendError(c, "match not found")
		return
	}
	if !isParty {
		sendError(c, "access denied to this match")
		return
	}

	h.hub.Join(c, MatchGroup(matchID))
	sendRoomEvent(c, EventMatchJoined, matchID)
}

func (h *Handler) sendMessage(ctx context.Context, c *Client, frame clientFrame) {
	// Persistence and the broadcast both run inside the usecase so
	// HTTP and websocket senders share one path.
	if _, err := h.messages.Send(ctx, frame.MatchID, c.UserID, c.Role, frame.Body); err != nil {
		sendError(c, "failed to send message")
		if h.logger != nil {
			h.logger.Printf("WS message send failed | user=%s match=%s error=%v", c.UserID, frame.MatchID, err)
		}
	}
}

func (h *Handler) relayTyping(c *Client, matchID uuid.UUID, start bool) {
	if !h.hub.InGroup(c, MatchGroup(matchID)) {
		sendError(c, "join the match first")
		return
	}
	h.notifier.BroadcastTyping(matchID, c.UserID, start, c)
}
