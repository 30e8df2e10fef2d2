package web

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	sendBuffer   = 256
	writeTimeout = 5 * time.Second
	pongTimeout  = 60 * time.Second
	pingInterval = pongTimeout * 9 / 10
	maxMessage   = 4096
)

// Connection wraps a websocket with a buffered outbound queue. Only the
// write pump writes to the socket.
type Connection struct {
	ws        *websocket.Conn
	send      chan []byte
	closeOnce sync.Once
	done      chan struct{}
}

// NewConnection creates a new connection wrapper.
func NewConnection(ws *websocket.Conn) *Connection {
	return &Connection{
		ws:   ws,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
	}
}

// ReadPump delivers inbound text messages to handle until the peer goes
// away, then closes the connection.
func (c *Connection) ReadPump(handle func(message []byte)) error {
	defer c.Close()

	c.ws.SetReadLimit(maxMessage)
	//nolint:errcheck // A failed deadline surfaces on the next read
	c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongTimeout))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				return err
			}
			return nil
		}
		handle(message)
	}
}

// WritePump drains the outbound queue and keeps the peer alive with pings.
func (c *Connection) WritePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message := <-c.send:
			//nolint:errcheck // A failed deadline surfaces on the write
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			w, err := c.ws.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			if _, err := w.Write(message); err != nil {
				return
			}
			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			//nolint:errcheck // A failed deadline surfaces on the write
			c.ws.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			//nolint:errcheck // Best-effort goodbye
			c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		}
	}
}

// Send queues v as JSON. A client that cannot keep up is disconnected.
func (c *Connection) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	select {
	case <-c.done:
		return errClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	default:
		c.Close()
		return errSlowClient
	}
}

// Done is closed once the connection is shutting down.
func (c *Connection) Done() <-chan struct{} {
	return c.done
}

// Close stops both pumps. It is safe to call more than once.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}
