package controller

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	apperrors "github.com/milicode/gym-panel/internal/errors"
	"github.com/milicode/gym-panel/internal/middleware"
	ws "github.com/milicode/gym-panel/internal/websocket"
)

type WebsocketController struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWebsocketController(hub *ws.Hub, allowedOrigins []string) *WebsocketController {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	return &WebsocketController{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowed["*"] || allowed[origin] {
					return true
				}
				// pages served by this server
				u, err := url.Parse(origin)
				return err == nil && u.Host == r.Host
			},
		},
	}
}

// Draft upgrades to a websocket that follows the session's draft.
// GET /ws/draft
func (ctrl *WebsocketController) Draft(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	sessionID := middleware.GetSessionID(c)
	if sessionID == "" {
		apperrors.Unauthorized(c, "")
		return
	}

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn("WebSocket upgrade failed", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	client := ws.NewClient(ctrl.hub, conn, sessionID)
	ctrl.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
