package websocket

import (
	"encoding/json"
	"time"
)

// Event names carried over the channel. The set is closed: anything else
// inbound is rejected with an error event.
const (
	EventOnlineUsers        = "getOnlineUsers"     // server -> all: []string of online user IDs
	EventNewMessage         = "newMessage"         // server -> target: entity.Message
	EventMessagesReadUpdate = "messagesReadUpdate" // server -> target: MessagesReadUpdateData
	EventMarkMessagesAsRead = "markMessagesAsRead" // client -> server: MarkMessagesAsReadData
	EventError              = "error"              // server -> target: ErrorData
)

// Event is the wire envelope for every frame in both directions.
type Event struct {
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp string          `json:"timestamp"`
}

type MarkMessagesAsReadData struct {
	OtherUserID string `json:"otherUserId"`
}

type MessagesReadUpdateData struct {
	ConversationPartnerID string `json:"conversationPartnerId"`
}

type ErrorData struct {
	Error string `json:"error"`
}

// Encode marshals an event payload into a framed envelope.
func Encode(eventType string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Event{
		Type:      eventType,
		Data:      payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
