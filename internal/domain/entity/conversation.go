package entity

// Conversation is a read-side projection derived from the message history:
// one entry per partner the user has exchanged at least one message with.
// It is never persisted.
type Conversation struct {
	Partner     *User    `json:"partner"`
	LastMessage *Message `json:"last_message"`
	UnreadCount int      `json:"unread_count"`
}
