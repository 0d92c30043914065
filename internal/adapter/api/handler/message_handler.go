package handler

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/usecase"
	"pingme/pkg/response"
)

type MessageHandler struct {
	messageUseCase *usecase.MessageUseCase
}

func NewMessageHandler(messageUseCase *usecase.MessageUseCase) *MessageHandler {
	return &MessageHandler{
		messageUseCase: messageUseCase,
	}
}

// GetMessages returns the caller's full history with the user in the path.
func (h *MessageHandler) GetMessages(c echo.Context) error {
	uid := c.Get("uid").(string)

	messages, err := h.messageUseCase.GetMessages(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, messages)
}

// SendMessage sends a message to the user in the path. The body carries
// text and optional base64 media attachments.
func (h *MessageHandler) SendMessage(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.SendMessageInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	message, err := h.messageUseCase.SendMessage(c.Request().Context(), uid, c.Param("id"), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, message)
}
