package usecase

import (
	"context"

	"pingme/internal/domain/repository"
	ws "pingme/internal/infrastructure/websocket"
	"pingme/pkg/logger"
)

// ReadReceiptUseCase marks a conversation as read on behalf of the reader
// and notifies the other participant over their live connection.
type ReadReceiptUseCase struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	wsManager   *ws.Manager
}

func NewReadReceiptUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	wsManager *ws.Manager,
) *ReadReceiptUseCase {
	return &ReadReceiptUseCase{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		wsManager:   wsManager,
	}
}

// MarkConversationRead flips unread messages from otherUserID to readerID
// to "read", then tells otherUserID which conversation was read. Failures
// are logged and swallowed: a read receipt is advisory, the reader's
// session must not break over it.
func (uc *ReadReceiptUseCase) MarkConversationRead(ctx context.Context, readerID, otherUserID string) error {
	updated, err := uc.messageRepo.MarkConversationRead(ctx, otherUserID, readerID)
	if err != nil {
		logger.Warn("Failed to mark messages read (%s <- %s): %v", readerID, otherUserID, err)
		return nil
	}
	logger.Debug("Marked %d messages read (%s <- %s)", updated, readerID, otherUserID)

	reader, err := uc.userRepo.GetByID(ctx, readerID)
	if err != nil {
		logger.Warn("Read receipt notification skipped, failed to load reader %s: %v", readerID, err)
		return nil
	}
	if !reader.Privacy.ReadReceipts {
		return nil
	}

	uc.wsManager.EmitToUser(otherUserID, ws.EventMessagesReadUpdate, ws.MessagesReadUpdateData{
		ConversationPartnerID: readerID,
	})
	return nil
}
