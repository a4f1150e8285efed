// internal/handlers/dashboard/handler.go
package dashboard

import (
	"errors"
	"net/http"
	"strconv"

	"tour-admin/internal/middleware"
	xerrors "tour-admin/internal/pkg/errors"
	"tour-admin/internal/pkg/response"
	"tour-admin/internal/pkg/session"
	service "tour-admin/internal/service/dashboard"
	"tour-admin/pkg/client"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	svc    *service.Service
	cookie session.CookieOptions
	logger *zap.Logger
}

func NewDashboardHandler(svc *service.Service, cookie session.CookieOptions, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, cookie: cookie, logger: logger}
}

// RegisterRoutes mounts the JSON surface on api, normally /dashboard/api.
func (h *DashboardHandler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/stats", h.Stats)

	api.GET("/vehicles", h.ListVehicles)
	api.POST("/vehicles", h.CreateVehicle)
	api.GET("/vehicles/:id", h.GetVehicle)
	api.PUT("/vehicles/:id", h.UpdateVehicle)
	api.DELETE("/vehicles/:id", h.DeleteVehicle)

	api.GET("/tours", h.ListTours)
	api.POST("/tours", h.CreateTour)
	api.GET("/tours/:id", h.GetTour)
	api.PUT("/tours/:id", h.UpdateTour)
	api.DELETE("/tours/:id", h.DeleteTour)

	api.GET("/bookings", h.ListBookings)
	api.GET("/bookings/:id", h.GetBooking)
	api.PUT("/bookings/:id/status", h.UpdateBookingStatus)

	api.GET("/users", h.ListUsers)
	api.GET("/users/:id", h.GetUser)
	api.PUT("/users/:id/status", h.SetUserActive)
	api.DELETE("/users/:id", h.DeleteUser)

	api.GET("/cities", h.ListCities)
	api.POST("/cities", h.CreateCity)
	api.PUT("/cities/:id", h.UpdateCity)
	api.DELETE("/cities/:id", h.DeleteCity)
}

// Shell renders the dashboard page with the current stats.
func (h *DashboardHandler) Shell(c *gin.Context) {
	sess := middleware.MustGetSession(c)
	data := gin.H{
		"Name":       sess.Identity.Name,
		"Email":      sess.Identity.Email,
		"Stats":      nil,
		"StatsError": "",
	}

	stats, err := h.svc.Stats(c.Request.Context(), sess)
	if err != nil {
		if h.teardown(c, err) {
			return
		}
		h.logger.Warn("dashboard stats unavailable", zap.Error(err))
		data["StatsError"] = "Statistics are unavailable right now."
	} else {
		data["Stats"] = stats
	}

	c.HTML(http.StatusOK, "dashboard.html", data)
}

// Stats returns the dashboard aggregates.
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.svc.Stats(c.Request.Context(), middleware.MustGetSession(c))
	if err != nil {
		h.fail(c, "failed to load stats", err)
		return
	}
	response.Success(c, http.StatusOK, "stats retrieved", stats)
}

// fail answers a failed gateway call. A rejected session credential tears the
// session down; other errors keep the backend status. Transport errors and
// failure envelopes carried on a non-error status become 502.
func (h *DashboardHandler) fail(c *gin.Context, message string, err error) {
	if h.teardown(c, err) {
		return
	}

	status := xerrors.HTTPStatus(err)
	var httpErr *client.HTTPError
	if errors.As(err, &httpErr) {
		status = httpErr.StatusCode
	}
	if status < http.StatusBadRequest {
		// success:false envelope on a 2xx/3xx answer
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error(message, zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	response.Error(c, status, message, err)
}

// teardown clears the session and sends the browser to the login page when
// the backend rejected the credential. It reports whether it responded.
func (h *DashboardHandler) teardown(c *gin.Context, err error) bool {
	if !session.TeardownRequested(c.Request.Context()) && !client.IsUnauthorized(err) {
		return false
	}

	if sess, ok := middleware.GetSession(c); ok {
		h.logger.Info("backend rejected session, signing out",
			zap.Int64("identity_id", sess.Identity.ID),
			zap.String("jti", sess.JTI),
		)
	}
	session.Clear(c, h.cookie)

	if response.WantsJSON(c) {
		response.Unauthorized(c, xerrors.ErrSessionExpired.Error(), middleware.LoginPath)
		return true
	}
	c.Redirect(http.StatusFound, middleware.LoginPath)
	c.Abort()
	return true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.ValidationError(c, "invalid ID", err)
		return 0, false
	}
	return id, true
}
