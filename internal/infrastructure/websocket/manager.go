package websocket

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"pingme/pkg/logger"
)

// ReadReceiptMarker handles an inbound markMessagesAsRead request on behalf
// of the connected user. Wired after construction to avoid a dependency
// cycle with the usecase layer.
type ReadReceiptMarker interface {
	MarkConversationRead(ctx context.Context, readerID, otherUserID string) error
}

// Manager is the connection registry. It tracks every live client, maps
// authenticated users to their single active connection, and fans presence
// snapshots out to everyone.
type Manager struct {
	mu           sync.RWMutex
	conns        map[*Client]bool
	byUser       map[string]*Client
	readReceipts ReadReceiptMarker
}

func NewManager() *Manager {
	return &Manager{
		conns:  make(map[*Client]bool),
		byUser: make(map[string]*Client),
	}
}

// SetReadReceiptMarker wires the read-receipt coordinator. Must be called
// before the manager accepts connections.
func (m *Manager) SetReadReceiptMarker(rr ReadReceiptMarker) {
	m.readReceipts = rr
}

// Register adds a client and broadcasts the new presence snapshot. A user
// reconnecting replaces their previous mapping (last write wins); the old
// connection stays alive until its own pumps tear it down, but it is no
// longer the delivery target.
func (m *Manager) Register(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.conns[c] = true
	if c.UserID != "" {
		m.byUser[c.UserID] = c
		logger.Info("User connected: %s (online: %d)", c.UserID, len(m.byUser))
	}
	m.broadcastPresenceLocked()
}

// Unregister removes a client and broadcasts the new presence snapshot.
// The byUser entry is removed only if it still points at this client, so a
// stale connection closing late cannot evict a newer registration.
func (m *Manager) Unregister(c *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.conns[c]; !ok {
		return
	}
	delete(m.conns, c)
	close(c.Send)

	if c.UserID != "" {
		if current, ok := m.byUser[c.UserID]; ok && current == c {
			delete(m.byUser, c.UserID)
			logger.Info("User disconnected: %s (online: %d)", c.UserID, len(m.byUser))
		}
	}
	m.broadcastPresenceLocked()
}

// Lookup returns the active connection for a user, if any.
func (m *Manager) Lookup(userID string) (*Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byUser[userID]
	return c, ok
}

// OnlineUsers returns the sorted IDs of all connected authenticated users.
func (m *Manager) OnlineUsers() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.onlineUsersLocked()
}

func (m *Manager) onlineUsersLocked() []string {
	ids := make([]string, 0, len(m.byUser))
	for id := range m.byUser {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// EmitToUser encodes an event and delivers it to the user's active
// connection. Returns false when the user is offline; the caller decides
// whether that matters.
func (m *Manager) EmitToUser(userID, eventType string, data interface{}) bool {
	frame, err := Encode(eventType, data)
	if err != nil {
		logger.Error("Failed to encode %s event: %v", eventType, err)
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.byUser[userID]
	if !ok {
		return false
	}
	c.enqueue(frame)
	return true
}

// broadcastPresenceLocked fans the current online-user snapshot out to every
// connection, anonymous ones included. Caller holds m.mu.
func (m *Manager) broadcastPresenceLocked() {
	frame, err := Encode(EventOnlineUsers, m.onlineUsersLocked())
	if err != nil {
		logger.Error("Failed to encode presence snapshot: %v", err)
		return
	}
	for c := range m.conns {
		c.enqueue(frame)
	}
}

// HandleClientMessage dispatches an inbound frame from a connected client.
func (m *Manager) HandleClientMessage(c *Client, raw []byte) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		m.sendError(c, "invalid message format")
		return
	}

	switch event.Type {
	case EventMarkMessagesAsRead:
		if c.UserID == "" {
			m.sendError(c, "authentication required")
			return
		}
		var data MarkMessagesAsReadData
		if err := json.Unmarshal(event.Data, &data); err != nil || data.OtherUserID == "" {
			m.sendError(c, "otherUserId is required")
			return
		}
		if m.readReceipts == nil {
			logger.Error("markMessagesAsRead received but no coordinator wired")
			return
		}
		if err := m.readReceipts.MarkConversationRead(context.Background(), c.UserID, data.OtherUserID); err != nil {
			logger.Warn("Failed to mark conversation read for %s: %v", c.UserID, err)
		}
	default:
		m.sendError(c, "unknown event type: "+event.Type)
	}
}

func (m *Manager) sendError(c *Client, msg string) {
	frame, err := Encode(EventError, ErrorData{Error: msg})
	if err != nil {
		return
	}
	c.enqueue(frame)
}
