package repository

import (
	"context"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"pingme/internal/domain/entity"
	"pingme/internal/domain/repository"
)

type firestoreMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreMessageRepository(client *firestore.Client) repository.MessageRepository {
	return &firestoreMessageRepository{
		client: client,
	}
}

func (r *firestoreMessageRepository) Create(ctx context.Context, message *entity.Message) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := r.client.Collection("messages").Doc(message.ID).Set(ctx, message)
	return err
}

func (r *firestoreMessageRepository) collectMessages(ctx context.Context, query firestore.Query) ([]*entity.Message, error) {
	iter := query.Documents(ctx)
	var messages []*entity.Message

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var message entity.Message
		if err := doc.DataTo(&message); err != nil {
			return nil, err
		}
		message.ID = doc.Ref.ID
		messages = append(messages, &message)
	}

	return messages, nil
}

// ListBetween returns both directions of a conversation, oldest first.
// Firestore cannot OR across fields, so the two directions are fetched
// separately and merged in memory.
func (r *firestoreMessageRepository) ListBetween(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	sent, err := r.collectMessages(ctx, r.client.Collection("messages").
		Where("senderId", "==", userID).
		Where("receiverId", "==", otherUserID))
	if err != nil {
		return nil, err
	}

	received, err := r.collectMessages(ctx, r.client.Collection("messages").
		Where("senderId", "==", otherUserID).
		Where("receiverId", "==", userID))
	if err != nil {
		return nil, err
	}

	messages := append(sent, received...)
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

// ListByUser returns every message the user sent or received, oldest first.
func (r *firestoreMessageRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Message, error) {
	sent, err := r.collectMessages(ctx, r.client.Collection("messages").
		Where("senderId", "==", userID))
	if err != nil {
		return nil, err
	}

	received, err := r.collectMessages(ctx, r.client.Collection("messages").
		Where("receiverId", "==", userID))
	if err != nil {
		return nil, err
	}

	messages := append(sent, received...)
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})

	return messages, nil
}

// MarkConversationRead flips every unread message from senderID to
// receiverID to "read" and returns how many documents changed.
func (r *firestoreMessageRepository) MarkConversationRead(ctx context.Context, senderID, receiverID string) (int64, error) {
	iter := r.client.Collection("messages").
		Where("senderId", "==", senderID).
		Where("receiverId", "==", receiverID).
		Where("status", "!=", entity.MessageStatusRead).
		Documents(ctx)

	var updated int64
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return updated, err
		}

		_, err = doc.Ref.Update(ctx, []firestore.Update{
			{Path: "status", Value: entity.MessageStatusRead},
		})
		if err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}
