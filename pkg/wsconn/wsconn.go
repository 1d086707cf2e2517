// Package wsconn wraps a gorilla websocket connection so that multiple
// goroutines can send to it. Gorilla allows at most one concurrent
// writer; broadcasts originate from other clients' goroutines, so every
// write goes through one mutex.
package wsconn

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/watchparty/server/internal/domain"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4096
)

type Conn struct {
	ws *websocket.Conn
	mu sync.Mutex
}

var _ domain.Connection = (*Conn)(nil)

func New(ws *websocket.Conn) *Conn {
	ws.SetReadLimit(maxMessageSize)

	return &Conn{ws: ws}
}

func (c *Conn) Send(msg any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(msg)
}

// ReadMessage blocks until the next inbound frame. Must only be called
// from the connection's own session goroutine.
func (c *Conn) ReadMessage() ([]byte, error) {
	_, data, err := c.ws.ReadMessage()
	return data, err
}

func (c *Conn) Close() error {
	return c.ws.Close()
}

// CloseWithCode sends a close frame with the given status code before
// tearing the connection down.
func (c *Conn) CloseWithCode(code int, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ws.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeWait),
	)
	return c.ws.Close()
}
