package repository

import (
	"context"

	"pingme/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error

	// ListBetween returns every message exchanged between the two users,
	// ascending by creation time.
	ListBetween(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error)

	// ListByUser returns every message the user sent or received.
	ListByUser(ctx context.Context, userID string) ([]*entity.Message, error)

	// MarkConversationRead sets status to "read" on every message from
	// senderID to receiverID that is not yet read, and returns how many
	// documents were updated.
	MarkConversationRead(ctx context.Context, senderID, receiverID string) (int64, error)
}
