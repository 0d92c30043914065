package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"time"

	"pingme/internal/domain/entity"
	"pingme/internal/domain/repository"
	"pingme/internal/domain/service"
	ws "pingme/internal/infrastructure/websocket"
	"pingme/pkg/errors"
	"pingme/pkg/logger"
	"pingme/pkg/utils"
)

type MessageUseCase struct {
	messageRepo   repository.MessageRepository
	userRepo      repository.UserRepository
	uploader      service.FileUploadService
	wsManager     *ws.Manager
	achievements  MessageSentRecorder
	rateLimiter   RateLimiter
	maxVideoBytes int64
}

type SendMessageInput struct {
	Text  string `json:"text"`
	Image string `json:"image"`
	Video string `json:"video"`
}

func NewMessageUseCase(
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	uploader service.FileUploadService,
	wsManager *ws.Manager,
	achievements MessageSentRecorder,
	rateLimiter RateLimiter,
	maxVideoSizeMB int64,
) *MessageUseCase {
	return &MessageUseCase{
		messageRepo:   messageRepo,
		userRepo:      userRepo,
		uploader:      uploader,
		wsManager:     wsManager,
		achievements:  achievements,
		rateLimiter:   rateLimiter,
		maxVideoBytes: maxVideoSizeMB * 1024 * 1024,
	}
}

// SendMessage validates, uploads any inline media, persists the message and
// pushes it to the receiver's live connection if there is one.
func (uc *MessageUseCase) SendMessage(ctx context.Context, senderID, receiverID string, input SendMessageInput) (*entity.Message, error) {
	if senderID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	if receiverID == "" {
		return nil, errors.BadRequest("Receiver is required", nil)
	}
	if senderID == receiverID {
		return nil, errors.BadRequest("Cannot send a message to yourself", nil)
	}
	if input.Text == "" && input.Image == "" && input.Video == "" {
		return nil, errors.BadRequest("Message must contain text, an image or a video", nil)
	}

	if allowed, wait := uc.rateLimiter.Allow(senderID, "send_message"); !allowed {
		return nil, errors.TooManyRequests(fmt.Sprintf("Message rate limit exceeded, retry in %s", wait.Round(time.Second)))
	}

	if _, err := uc.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       input.Text,
		Status:     entity.MessageStatusSent,
	}

	folder := fmt.Sprintf("messageImages/%s-%s", senderID, receiverID)

	// Media uploads happen before the message document is written: a
	// message must never reference a blob that was not stored.
	if input.Image != "" {
		payload, err := utils.ParseImageDataURL(input.Image)
		if err != nil {
			return nil, errors.BadRequest("Invalid image attachment", err)
		}
		url, err := uc.uploader.UploadFile(ctx, bytes.NewReader(payload.Data), payload.ContentType, folder, true)
		if err != nil {
			return nil, errors.Internal("Failed to store image", err)
		}
		message.Image = url
	}

	if input.Video != "" {
		payload, err := utils.ParseVideoDataURL(input.Video)
		if err != nil {
			return nil, errors.BadRequest("Invalid video attachment", err)
		}
		if int64(len(payload.Data)) > uc.maxVideoBytes {
			return nil, errors.BadRequest(fmt.Sprintf("Video exceeds the %dMB limit", uc.maxVideoBytes/(1024*1024)), nil)
		}
		url, err := uc.uploader.UploadFile(ctx, bytes.NewReader(payload.Data), payload.ContentType, folder, true)
		if err != nil {
			return nil, errors.Internal("Failed to store video", err)
		}
		message.Video = url
	}

	if err := uc.messageRepo.Create(ctx, message); err != nil {
		return nil, errors.Internal("Failed to save message", err)
	}

	if uc.achievements != nil {
		uc.achievements.RecordMessageSent(ctx, senderID)
	}

	if delivered := uc.wsManager.EmitToUser(receiverID, ws.EventNewMessage, message); !delivered {
		logger.Debug("Receiver %s offline, message %s stored only", receiverID, message.ID)
	}

	return message, nil
}

// GetMessages returns the full history between the caller and the other
// user, oldest first.
func (uc *MessageUseCase) GetMessages(ctx context.Context, userID, otherUserID string) ([]*entity.Message, error) {
	if userID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	if otherUserID == "" {
		return nil, errors.BadRequest("User is required", nil)
	}

	messages, err := uc.messageRepo.ListBetween(ctx, userID, otherUserID)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}
	if messages == nil {
		messages = []*entity.Message{}
	}
	return messages, nil
}

// ListConversations builds the caller's conversation index: one entry per
// partner, with the latest message, the count of unread incoming messages
// and the partner's profile, sorted by recency.
func (uc *MessageUseCase) ListConversations(ctx context.Context, userID string) ([]*entity.Conversation, error) {
	if userID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	messages, err := uc.messageRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Internal("Failed to load messages", err)
	}

	type bucket struct {
		last   *entity.Message
		unread int
	}
	byPartner := make(map[string]*bucket)

	for _, m := range messages {
		partnerID := m.SenderID
		if partnerID == userID {
			partnerID = m.ReceiverID
		}

		b, ok := byPartner[partnerID]
		if !ok {
			b = &bucket{}
			byPartner[partnerID] = b
		}
		if b.last == nil || m.CreatedAt.After(b.last.CreatedAt) {
			b.last = m
		}
		if m.ReceiverID == userID && m.Status != entity.MessageStatusRead {
			b.unread++
		}
	}

	partnerIDs := make([]string, 0, len(byPartner))
	for id := range byPartner {
		partnerIDs = append(partnerIDs, id)
	}

	partners, err := uc.userRepo.ListByIDs(ctx, partnerIDs)
	if err != nil {
		return nil, errors.Internal("Failed to load conversation partners", err)
	}
	partnerByID := make(map[string]*entity.User, len(partners))
	for _, p := range partners {
		partnerByID[p.ID] = p
	}

	conversations := make([]*entity.Conversation, 0, len(byPartner))
	for id, b := range byPartner {
		partner, ok := partnerByID[id]
		if !ok {
			// Deleted account; the history stays but the index entry goes.
			logger.Warn("Skipping conversation with unknown user %s", id)
			continue
		}
		conversations = append(conversations, &entity.Conversation{
			Partner:     partner,
			LastMessage: b.last,
			UnreadCount: b.unread,
		})
	}

	sort.Slice(conversations, func(i, j int) bool {
		return conversations[i].LastMessage.CreatedAt.After(conversations[j].LastMessage.CreatedAt)
	})

	return conversations, nil
}
