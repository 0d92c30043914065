package entity

import "time"

const (
	MessageStatusSent      = "sent"
	MessageStatusDelivered = "delivered"
	MessageStatusRead      = "read"
)

type Message struct {
	ID         string    `json:"id" firestore:"id"`
	SenderID   string    `json:"sender_id" firestore:"senderId"`
	ReceiverID string    `json:"receiver_id" firestore:"receiverId"`
	Text       string    `json:"text" firestore:"text"`
	Image      string    `json:"image,omitempty" firestore:"image,omitempty"`
	Video      string    `json:"video,omitempty" firestore:"video,omitempty"`
	Status     string    `json:"status" firestore:"status"` // "sent", "delivered", "read"
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}

// HasContent reports whether at least one of text, image or video is set.
// A message with none of them is invalid and must never be persisted.
func (m *Message) HasContent() bool {
	return m.Text != "" || m.Image != "" || m.Video != ""
}
