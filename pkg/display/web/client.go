package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 30 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Client is a websocket connection to a browser.
type Client struct {
	hub  *hub
	conn *websocket.Conn
	send chan []byte

	ID          uint8
	RemoteAddr  string
	connectedAt time.Time

	// average round trip time, in milliseconds
	avgLatency atomic.Uint32
}

// message is a message read from a client.
type message struct {
	client *Client
	data   []byte
}

// readPump forwards messages from the client to the hub, until
// the connection fails or the client says it is closing.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(data) == 0 {
			continue
		}
		if data[0] == Closing {
			return
		}

		select {
		case c.hub.inbound <- message{client: c, data: data}:
		case <-c.hub.done:
			return
		}
	}
}

// writePump writes queued messages to the client. The hub closes
// send when the client is unregistered.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}

			// update average latency
			if rtt, err := roundTrip(c.conn.UnderlyingConn()); err == nil {
				avg := c.avgLatency.Load()
				c.avgLatency.Store((avg*9 + rtt/1000) / 10)
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
