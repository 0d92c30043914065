package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingme/internal/domain/entity"
	ws "pingme/internal/infrastructure/websocket"
)

// Exercises the whole realtime path: two connected users exchange a message,
// the recipient marks it read over the socket, and the sender is notified.
func TestMessageLifecycle(t *testing.T) {
	userRepo := newFakeUserRepo(testUser("u1", "Alice"), testUser("u2", "Bob"))
	messageRepo := newFakeMessageRepo()
	manager := ws.NewManager()

	achievements := NewAchievementUseCase(userRepo)
	messageUC := NewMessageUseCase(messageRepo, userRepo, &fakeUploader{}, manager, achievements, &fakeLimiter{}, 50)
	readReceiptUC := NewReadReceiptUseCase(messageRepo, userRepo, manager)
	manager.SetReadReceiptMarker(readReceiptUC)

	alice := connect(manager, "u1")
	bob := connect(manager, "u2")
	drainClient(alice) // presence update from bob's arrival
	ctx := context.Background()

	// Alice sends; Bob receives it live.
	sent, err := messageUC.SendMessage(ctx, "u1", "u2", SendMessageInput{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, entity.MessageStatusSent, sent.Status)

	bobEvents := drainClient(bob)
	require.Len(t, bobEvents, 1)
	require.Equal(t, ws.EventNewMessage, bobEvents[0].Type)
	var received entity.Message
	require.NoError(t, json.Unmarshal(bobEvents[0].Data, &received))
	assert.Equal(t, "hi", received.Text)

	// Bob marks the conversation read over the socket.
	frame, err := ws.Encode(ws.EventMarkMessagesAsRead, ws.MarkMessagesAsReadData{OtherUserID: "u1"})
	require.NoError(t, err)
	manager.HandleClientMessage(bob, frame)

	// Alice is told which conversation was read.
	aliceEvents := drainClient(alice)
	require.Len(t, aliceEvents, 1)
	require.Equal(t, ws.EventMessagesReadUpdate, aliceEvents[0].Type)
	var update ws.MessagesReadUpdateData
	require.NoError(t, json.Unmarshal(aliceEvents[0].Data, &update))
	assert.Equal(t, "u2", update.ConversationPartnerID)

	// The history now shows the message as read.
	history, err := messageUC.GetMessages(ctx, "u1", "u2")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, entity.MessageStatusRead, history[0].Status)

	// And the sender's counter moved.
	sender, err := userRepo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), sender.Stats.MessagesSent)
}
