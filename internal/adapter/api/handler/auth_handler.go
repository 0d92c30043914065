package handler

import (
	"github.com/labstack/echo/v4"

	"pingme/internal/usecase"
	"pingme/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
	userUseCase *usecase.UserUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase, userUseCase *usecase.UserUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		userUseCase: userUseCase,
	}
}

func (h *AuthHandler) Signup(c echo.Context) error {
	var req usecase.RegisterInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Register(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req usecase.LoginInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Login(c.Request().Context(), req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *AuthHandler) Logout(c echo.Context) error {
	uid := c.Get("uid").(string)

	if err := h.authUseCase.Logout(c.Request().Context(), uid); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Logged out"})
}

// Check returns the authenticated caller's profile; clients use it to
// restore a session on reload.
func (h *AuthHandler) Check(c echo.Context) error {
	uid := c.Get("uid").(string)

	user, err := h.authUseCase.GetCurrentUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.UpdateProfileInput
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateProfile(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *AuthHandler) UpdateTheme(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req struct {
		ProfileTheme string `json:"profileTheme" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.userUseCase.UpdateTheme(c.Request().Context(), uid, req.ProfileTheme)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

// WSTicket hands the authenticated caller a short-lived ticket for the
// websocket handshake.
func (h *AuthHandler) WSTicket(c echo.Context) error {
	uid := c.Get("uid").(string)

	ticket, err := h.authUseCase.IssueWSTicket(uid)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"ticket": ticket})
}
