package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"pingme/internal/usecase"
	"pingme/pkg/response"
)

type UserHandler struct {
	userUseCase    *usecase.UserUseCase
	messageUseCase *usecase.MessageUseCase
}

func NewUserHandler(userUseCase *usecase.UserUseCase, messageUseCase *usecase.MessageUseCase) *UserHandler {
	return &UserHandler{
		userUseCase:    userUseCase,
		messageUseCase: messageUseCase,
	}
}

func (h *UserHandler) Search(c echo.Context) error {
	uid := c.Get("uid").(string)

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	users, err := h.userUseCase.SearchUsers(c.Request().Context(), uid, c.QueryParam("q"), limit)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, users)
}

// Contacts returns the caller's conversation index: everyone they have
// messaged with, latest message first.
func (h *UserHandler) Contacts(c echo.Context) error {
	uid := c.Get("uid").(string)

	conversations, err := h.messageUseCase.ListConversations(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, conversations)
}

func (h *UserHandler) Profile(c echo.Context) error {
	user, err := h.userUseCase.GetUserProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *UserHandler) UpdatePrivacy(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.UpdatePrivacyInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdatePrivacy(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}
