package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "pingme/internal/infrastructure/websocket"
	"pingme/internal/usecase"
	"pingme/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Origins are filtered by the CORS middleware in front
	},
}

type WebSocketHandler struct {
	manager     *ws.Manager
	authUseCase *usecase.AuthUseCase
}

func NewWebSocketHandler(manager *ws.Manager, authUseCase *usecase.AuthUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		manager:     manager,
		authUseCase: authUseCase,
	}
}

// HandleConnection upgrades the request and registers the client. A valid
// ?ticket= binds the connection to its user; otherwise the client joins
// anonymously and only receives presence broadcasts.
func (h *WebSocketHandler) HandleConnection(c echo.Context) error {
	userID := ""
	if ticket := c.QueryParam("ticket"); ticket != "" {
		uid, err := h.authUseCase.VerifyWSTicket(ticket)
		if err != nil {
			logger.Warn("Websocket ticket rejected: %v", err)
		} else {
			userID = uid
		}
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Error("Websocket upgrade failed: %v", err)
		return err
	}

	client := ws.NewClient(h.manager, conn, userID)
	h.manager.Register(client)

	go client.WritePump()
	go client.ReadPump()

	return nil
}
