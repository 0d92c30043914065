package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(m *Manager, userID string) *Client {
	return &Client{
		UserID:  userID,
		Send:    make(chan []byte, sendBufferSize),
		manager: m,
	}
}

func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case frame := <-c.Send:
			var e Event
			if err := json.Unmarshal(frame, &e); err == nil {
				events = append(events, e)
			}
		default:
			return events
		}
	}
}

func lastPresence(t *testing.T, c *Client) []string {
	t.Helper()
	events := drain(c)
	require.NotEmpty(t, events)

	var last []string
	found := false
	for _, e := range events {
		if e.Type == EventOnlineUsers {
			require.NoError(t, json.Unmarshal(e.Data, &last))
			found = true
		}
	}
	require.True(t, found, "expected a presence snapshot")
	return last
}

func TestRegisterBroadcastsPresence(t *testing.T) {
	m := NewManager()

	alice := newTestClient(m, "alice")
	m.Register(alice)
	assert.Equal(t, []string{"alice"}, lastPresence(t, alice))

	bob := newTestClient(m, "bob")
	m.Register(bob)

	// Both connections see the updated snapshot.
	assert.Equal(t, []string{"alice", "bob"}, lastPresence(t, alice))
	assert.Equal(t, []string{"alice", "bob"}, lastPresence(t, bob))
}

func TestAnonymousClientReceivesPresenceOnly(t *testing.T) {
	m := NewManager()

	anon := newTestClient(m, "")
	m.Register(anon)

	alice := newTestClient(m, "alice")
	m.Register(alice)

	// The anonymous connection sees who is online but never appears there.
	assert.Equal(t, []string{"alice"}, lastPresence(t, anon))
	_, ok := m.Lookup("")
	assert.False(t, ok)

	// And it is never an event target.
	assert.False(t, m.EmitToUser("", EventNewMessage, map[string]string{"x": "y"}))
}

func TestUnregisterBroadcastsPresence(t *testing.T) {
	m := NewManager()

	alice := newTestClient(m, "alice")
	bob := newTestClient(m, "bob")
	m.Register(alice)
	m.Register(bob)
	drain(alice)

	m.Unregister(bob)
	assert.Equal(t, []string{"alice"}, lastPresence(t, alice))

	_, ok := m.Lookup("bob")
	assert.False(t, ok)
}

func TestReconnectReplacesConnection(t *testing.T) {
	m := NewManager()

	first := newTestClient(m, "alice")
	m.Register(first)

	second := newTestClient(m, "alice")
	m.Register(second)

	// Last registration wins.
	current, ok := m.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, second, current)

	// Events go to the new connection only.
	drain(first)
	drain(second)
	require.True(t, m.EmitToUser("alice", EventNewMessage, map[string]string{"text": "hi"}))
	assert.Empty(t, drain(first))
	events := drain(second)
	require.Len(t, events, 1)
	assert.Equal(t, EventNewMessage, events[0].Type)
}

func TestStaleUnregisterKeepsNewConnection(t *testing.T) {
	m := NewManager()

	first := newTestClient(m, "alice")
	m.Register(first)
	second := newTestClient(m, "alice")
	m.Register(second)

	// The replaced connection closing late must not evict the new one.
	m.Unregister(first)

	current, ok := m.Lookup("alice")
	require.True(t, ok)
	assert.Same(t, second, current)
	assert.Equal(t, []string{"alice"}, m.OnlineUsers())
}

func TestEmitToOfflineUser(t *testing.T) {
	m := NewManager()
	assert.False(t, m.EmitToUser("ghost", EventNewMessage, nil))
}

func TestOnlineUsersSorted(t *testing.T) {
	m := NewManager()
	for _, id := range []string{"carol", "alice", "bob"} {
		m.Register(newTestClient(m, id))
	}
	assert.Equal(t, []string{"alice", "bob", "carol"}, m.OnlineUsers())
}

func TestConcurrentRegisterUnregister(t *testing.T) {
	m := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("user-%d", n)
			c := newTestClient(m, id)
			m.Register(c)
			m.EmitToUser(id, EventNewMessage, map[string]int{"n": n})
			if n%2 == 0 {
				m.Unregister(c)
			}
		}(i)
	}
	wg.Wait()

	online := m.OnlineUsers()
	assert.Len(t, online, 25)
	for _, id := range online {
		_, ok := m.Lookup(id)
		assert.True(t, ok)
	}
}

type recordingMarker struct {
	mu      sync.Mutex
	readers []string
	others  []string
}

func (r *recordingMarker) MarkConversationRead(ctx context.Context, readerID, otherUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers = append(r.readers, readerID)
	r.others = append(r.others, otherUserID)
	return nil
}

func TestHandleClientMessageMarkRead(t *testing.T) {
	m := NewManager()
	marker := &recordingMarker{}
	m.SetReadReceiptMarker(marker)

	alice := newTestClient(m, "alice")
	m.Register(alice)

	frame, err := Encode(EventMarkMessagesAsRead, MarkMessagesAsReadData{OtherUserID: "bob"})
	require.NoError(t, err)
	m.HandleClientMessage(alice, frame)

	assert.Equal(t, []string{"alice"}, marker.readers)
	assert.Equal(t, []string{"bob"}, marker.others)
}

func TestHandleClientMessageRejectsAnonymous(t *testing.T) {
	m := NewManager()
	marker := &recordingMarker{}
	m.SetReadReceiptMarker(marker)

	anon := newTestClient(m, "")
	m.Register(anon)
	drain(anon)

	frame, err := Encode(EventMarkMessagesAsRead, MarkMessagesAsReadData{OtherUserID: "bob"})
	require.NoError(t, err)
	m.HandleClientMessage(anon, frame)

	assert.Empty(t, marker.readers)
	events := drain(anon)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
}

func TestHandleClientMessageUnknownType(t *testing.T) {
	m := NewManager()

	alice := newTestClient(m, "alice")
	m.Register(alice)
	drain(alice)

	m.HandleClientMessage(alice, []byte(`{"type":"fly"}`))

	events := drain(alice)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
}

func TestHandleClientMessageMalformed(t *testing.T) {
	m := NewManager()

	alice := newTestClient(m, "alice")
	m.Register(alice)
	drain(alice)

	m.HandleClientMessage(alice, []byte(`not json`))

	events := drain(alice)
	require.Len(t, events, 1)
	assert.Equal(t, EventError, events[0].Type)
}

func TestUnregisterTwiceIsSafe(t *testing.T) {
	m := NewManager()

	alice := newTestClient(m, "alice")
	m.Register(alice)
	m.Unregister(alice)
	assert.NotPanics(t, func() { m.Unregister(alice) })
}
