package websocket

import (
	"github.com/gorilla/websocket"

	"pingme/pkg/logger"
)

const sendBufferSize = 256

// Client is a single websocket connection. UserID is empty for anonymous
// connections, which receive broadcasts but are never an event target.
type Client struct {
	UserID  string
	conn    *websocket.Conn
	Send    chan []byte
	manager *Manager
}

func NewClient(manager *Manager, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID:  userID,
		conn:    conn,
		Send:    make(chan []byte, sendBufferSize),
		manager: manager,
	}
}

// enqueue offers a frame to the client without blocking. A full buffer
// drops the frame; a slow consumer must not stall delivery to others.
func (c *Client) enqueue(message []byte) {
	select {
	case c.Send <- message:
	default:
		logger.Warn("Dropping frame for user %s: send buffer full", c.UserID)
	}
}

// ReadPump consumes frames from the connection until it errors, then tears
// the client down. Run as a goroutine, one per connection.
func (c *Client) ReadPump() {
	defer func() {
		c.manager.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Websocket read error for user %s: %v", c.UserID, err)
			}
			break
		}
		c.manager.HandleClientMessage(c, message)
	}
}

// WritePump drains the send buffer onto the connection. Run as a goroutine,
// one per connection. Exits when Unregister closes the Send channel.
func (c *Client) WritePump() {
	defer c.conn.Close()

	for message := range c.Send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Warn("Websocket write error for user %s: %v", c.UserID, err)
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
