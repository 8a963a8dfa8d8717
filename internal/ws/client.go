package ws

import (
	"log"
	"time"

	"talentswipe/internal/domain/user"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameSize   = 4096
	sendBufferSize = 64
)

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	// done is closed by the hub on unregister; send itself is never
	// closed, so Send stays safe from any goroutine.
	done chan struct{}

	UserID uuid.UUID
	Role   user.Role

	// groups is owned by the hub and guarded by its mutex.
	groups map[string]bool

	onFrame func(*Client, []byte)
	logger  *log.Logger
}

func NewClient(hub *Hub, conn *websocket.Conn, userID uuid.UUID, role user.Role, onFrame func(*Client, []byte), logger *log.Logger) *Client {
	return &Client{
		hub:     hub,
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		UserID:  userID,
		Role:    role,
		groups:  make(map[string]bool),
		onFrame: onFrame,
		logger:  logger,
	}
}

// Send queues a payload for this connection only; a full buffer or an
// already-unregistered client drops the frame rather than blocking or
// panicking the caller.
func (c *Client) Send(payload []byte) {
	select {
	case <-c.done:
		return
	default:
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) && c.logger != nil {
				c.logger.Printf("WS read error | user=%s error=%v", c.UserID, err)
			}
			return
		}
		if c.onFrame != nil {
			c.onFrame(c, data)
		}
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case payload := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}

		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
