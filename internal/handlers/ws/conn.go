package ws

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period; must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

// connection wraps one websocket client: its opaque participant identity,
// its outbound queue, and the session codes it has joined
type connection struct {
	// id is the opaque participant identifier supplied to the service
	id string

	sock    *websocket.Conn
	handler *Handler

	// send carries marshaled frames to the write pump
	send chan []byte

	// done is closed on disconnect; it stops the write pump without
	// closing send, which broadcast forwarders may still be writing to
	done chan struct{}

	// mu guards joined
	mu     sync.Mutex
	joined map[string]bool
}

// markJoined records a session subscription; returns false if the
// connection had already joined it
func (c *connection) markJoined(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.joined[code] {
		return false
	}
	c.joined[code] = true
	return true
}

// joinedCodes returns the session codes this connection subscribed to
func (c *connection) joinedCodes() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	codes := make([]string, 0, len(c.joined))
	for code := range c.joined {
		codes = append(codes, code)
	}
	return codes
}

// sendEvent marshals an event frame and queues it for the write pump.
// The send is non-blocking: a client that cannot drain its queue loses
// frames rather than stalling the read side of the service.
func (c *connection) sendEvent(event string, data any) {
	frame, err := json.Marshal(outbound{Event: event, Data: data})
	if err != nil {
		log.Printf("failed to marshal %s event: %v", event, err)
		return
	}

	select {
	case c.send <- frame:
	default:
		log.Printf("dropping %s frame for slow connection %s", event, c.id)
	}
}

// sendError reports a recoverable failure to this connection only
func (c *connection) sendError(message string) {
	c.sendEvent(eventError, errorPayload{Message: message})
}

// readPump reads frames from the socket and dispatches them until the
// connection drops, then runs disconnect cleanup.
func (c *connection) readPump() {
	defer func() {
		c.handler.disconnect(c)
		c.sock.Close()
	}()

	c.sock.SetReadLimit(maxMessageSize)
	c.sock.SetReadDeadline(time.Now().Add(pongWait))
	c.sock.SetPongHandler(func(string) error {
		c.sock.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, frame, err := c.sock.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("connection %s read error: %v", c.id, err)
			}
			return
		}

		var env envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			c.sendError("malformed event frame")
			continue
		}

		c.handler.dispatch(c, &env)
	}
}

// writePump drains the send queue to the socket and keeps the connection
// alive with pings.
func (c *connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.sock.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-c.done:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			c.sock.WriteMessage(websocket.CloseMessage, []byte{})
			return

		case <-ticker.C:
			c.sock.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.sock.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
