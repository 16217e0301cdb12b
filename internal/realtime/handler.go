package realtime

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rooming-app/rooming/internal/auth"
	"github.com/rooming-app/rooming/internal/logger"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 54 * time.Second
)

// Handler upgrades HTTP requests into push connections.
type Handler struct {
	hub         *Hub
	authService *auth.Service
}

func NewHandler(hub *Hub, authService *auth.Service) *Handler {
	return &Handler{hub: hub, authService: authService}
}

// HandleWebSocket authenticates via ?token= or the Authorization header
// and then streams notifications until the client goes away.
// GET /api/v1/ws
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}

	user, err := h.authService.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, nil)
	if err != nil {
		logger.Log.Warn("WebSocket accept failed",
			logger.WithUserID(user.ID),
			zap.Error(err),
		)
		return
	}

	cl := &client{userID: user.ID, send: make(chan []byte, sendBufferSize)}
	h.hub.register(cl)
	defer h.hub.unregister(cl)

	ctx := c.Request.Context()

	// Drain inbound frames so pongs and close frames are processed.
	go func() {
		for {
			if _, _, err := conn.Read(ctx); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	defer conn.Close(websocket.StatusNormalClosure, "closing")

	for {
		select {
		case <-ctx.Done():
			return

		case data, ok := <-cl.send:
			if !ok {
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Write(writeCtx, websocket.MessageText, data)
			cancel()
			if err != nil {
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}
		}
	}
}
