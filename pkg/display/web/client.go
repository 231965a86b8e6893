package web

import (
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a websocket connection attached to a Hub.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	Send     chan []byte
	ID       uint8
	Metadata struct {
		RemoteAddr string
		UserAgent  string
	}
	avgLatency  atomic.Uint32 // milliseconds
	connectedAt time.Time
}

// Latency returns the smoothed round trip time in milliseconds.
func (c *Client) Latency() uint16 {
	return uint16(c.avgLatency.Load())
}

// Uptime returns how long the client has been connected.
func (c *Client) Uptime() time.Duration {
	return time.Since(c.connectedAt)
}

func (c *Client) leave() {
	select {
	case c.hub.unregister <- c:
	case <-c.hub.done:
	}
}

// readPump applies the settings messages sent by the client.
func (c *Client) readPump() {
	// deferred function to handle unregistering client
	// and closing connection
	defer func() {
		c.leave()
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return // connection closed
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case settingsMessage:
			if len(message) < 3 {
				continue
			}
			c.hub.mu.Lock()
			switch message[1] {
			case Compression:
				c.hub.compression = message[2] == 1
			case CompressionLevel:
				c.hub.compressionLevel = int(min(message[2], 11))
			case FrameCaching:
				c.hub.cache.enabled = message[2] == 1 && c.hub.cache.size > 0
			}
			c.hub.mu.Unlock()
		case KeepAlive:
			continue
		case Closing: // websocket client request close
			return
		}
	}
}

// writePump writes queued messages until the hub closes Send.
func (c *Client) writePump() {
	defer func() {
		c.conn.WriteMessage(websocket.CloseMessage, []byte{})
		c.leave()
	}()

	for message := range c.Send {
		// try to write message to client
		if err := c.conn.WriteMessage(websocket.BinaryMessage, message); err != nil {
			return
		}

		// update average latency
		if d, err := rtt(c.conn.UnderlyingConn()); err == nil {
			avg := c.avgLatency.Load()
			c.avgLatency.Store((avg*9 + uint32(d.Milliseconds())) / 10)
		}
	}
}
