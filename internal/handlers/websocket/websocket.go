// internal/handlers/websocket/websocket.go
package handlers

import (
	"net/http"
	"time"

	"tour-admin/internal/middleware"
	"tour-admin/internal/pkg/response"
	"tour-admin/internal/service/dashboard"
	ws "tour-admin/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type WebSocketHandler struct {
	hub      *ws.Hub
	svc      *dashboard.Service
	interval time.Duration
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewWebSocketHandler serves the live stats feed. Stats are pushed every
// interval. Cross-origin upgrades are refused.
func NewWebSocketHandler(hub *ws.Hub, svc *dashboard.Service, interval time.Duration, logger *zap.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:      hub,
		svc:      svc,
		interval: interval,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

// HandleConnection upgrades a guarded request. The guard has already admitted
// the session, so no token is read here.
func (h *WebSocketHandler) HandleConnection(c *gin.Context) {
	sess := middleware.MustGetSession(c)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed",
			zap.Error(err),
			zap.String("ip", c.ClientIP()),
		)
		return
	}

	client := ws.NewClient(h.hub, conn, sess, h.svc.Gateway(sess).Stats, h.interval)
	if err := h.hub.Register(client); err != nil {
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}

	h.logger.Info("WebSocket client connected",
		zap.Int64("identity_id", sess.Identity.ID),
		zap.String("session_id", sess.JTI),
	)

	go client.WritePump()
	go client.ReadPump()
	go client.StatsLoop()
}

// GetStats returns WebSocket connection statistics
func (h *WebSocketHandler) GetStats(c *gin.Context) {
	response.Success(c, http.StatusOK, "WebSocket stats", gin.H{
		"total_connections": h.hub.TotalClients(),
		"timestamp":         time.Now(),
	})
}
