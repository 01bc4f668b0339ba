package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"restaurante-backend/internal/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
	sendBuffer     = 256
)

// ErrChannelClosed is returned by Send once the client is shutting down or
// its buffer is full; the registry treats it as a dead channel.
var ErrChannelClosed = errors.New("ws: channel closed or full")

// Client wraps one WebSocket connection as a push channel. Outbound frames go
// through a buffered send channel drained by the write pump; inbound frames
// are handed to the handle callback, whose optional reply is sent back.
type Client struct {
	ID   string
	conn *websocket.Conn
	log  *logger.Logger

	handle  func(data []byte) ([]byte, bool)
	onClose func(*Client)

	mu     sync.Mutex
	closed bool
	send   chan []byte
}

func NewClient(conn *websocket.Conn, lg *logger.Logger, handle func([]byte) ([]byte, bool), onClose func(*Client)) *Client {
	return &Client{
		ID:      uuid.NewString(),
		conn:    conn,
		log:     lg,
		handle:  handle,
		onClose: onClose,
		send:    make(chan []byte, sendBuffer),
	}
}

// Send enqueues a frame without blocking. A full buffer counts as a dead
// channel so a stalled client cannot back-pressure the registry.
func (c *Client) Send(b []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrChannelClosed
	}
	select {
	case c.send <- b:
		return nil
	default:
		return ErrChannelClosed
	}
}

// Close shuts the channel down. Safe to call more than once.
func (c *Client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	c.mu.Unlock()
}

// Run starts the write pump and blocks in the read loop until the peer goes
// away. Cleanup (onClose, underlying conn close) runs on every exit path.
func (c *Client) Run() {
	go c.writePump()
	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		if c.onClose != nil {
			c.onClose(c)
		}
		c.Close()
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.log.Error("ws_read_failed", err, map[string]any{"client_id": c.ID})
			}
			return
		}
		if c.handle == nil {
			continue
		}
		if reply, ok := c.handle(data); ok {
			if err := c.Send(reply); err != nil {
				return
			}
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
