// internal/app/router.go
package app

import (
	"net/http"

	authHandler "tour-admin/internal/handlers/auth"
	dashboardHandler "tour-admin/internal/handlers/dashboard"
	wsHandler "tour-admin/internal/handlers/websocket"
	"tour-admin/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handlers struct {
	AuthHandler      *authHandler.AuthHandler
	DashboardHandler *dashboardHandler.DashboardHandler
	WSHandler        *wsHandler.WebSocketHandler
	Metrics          http.Handler
}

// SetupRouter mounts every route. The guard is installed globally, so the
// grouping below carries no access rules of its own.
func SetupRouter(r *gin.Engine, h *Handlers) {
	// ==================== Health & Metrics ====================
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(h.Metrics))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "route not found")
	})

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, authHandler.DashboardPath)
	})

	// ==================== Sign-in ====================
	r.GET("/login", h.AuthHandler.ShowLogin)
	r.POST("/login", h.AuthHandler.Login)
	r.POST("/logout", h.AuthHandler.Logout)

	// ==================== Dashboard ====================
	dashboard := r.Group("/dashboard")
	{
		dashboard.GET("", h.DashboardHandler.Shell)

		api := dashboard.Group("/api")
		h.DashboardHandler.RegisterRoutes(api)
		api.GET("/ws", h.WSHandler.HandleConnection)
		api.GET("/ws/stats", h.WSHandler.GetStats)
	}
}
