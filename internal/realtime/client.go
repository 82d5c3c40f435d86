package realtime

import (
	"log"
	"time"

	"github.com/gorilla/websocket"
)

var (
	writeWait      = 10 * time.Second
	maxMessageSize = int64(4096)
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
)

// Client is one websocket connection. The send channel decouples emit calls
// from the socket write; the write pump is the only goroutine that touches the
// connection for writes.
type Client struct {
	ID   string
	conn *websocket.Conn
	send chan outbound
}

// NewClient wraps a websocket connection. conn may be nil in tests; deliver
// still queues onto the send channel.
func NewClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:   id,
		conn: conn,
		send: make(chan outbound, 64),
	}
}

// deliver queues an event for the write pump. A full send buffer drops the
// event; delivery is best-effort and a slow consumer does not block emitters.
func (c *Client) deliver(msg outbound) {
	select {
	case c.send <- msg:
	default:
		log.Printf("realtime: dropping %s for connection %s (send buffer full)", msg.Event, c.ID)
	}
}

// WritePump serializes queued events onto the socket and keeps the connection
// alive with pings. Runs until the send channel closes or a write fails.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				log.Printf("realtime: write to %s failed: %v", c.ID, err)
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// ReadPump reads client envelopes and hands them to handle until the
// connection drops, then unregisters the connection.
func (c *Client) ReadPump(g *Gateway, handle func(*Client, Envelope)) {
	defer func() {
		g.Unregister(c.ID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("realtime: read from %s failed: %v", c.ID, err)
			}
			return
		}
		handle(c, env)
	}
}
