package dashboard

import (
	"net/http"

	"tour-admin/internal/middleware"
	"tour-admin/internal/pkg/response"
	"tour-admin/pkg/domain"

	"github.com/gin-gonic/gin"
)

// ========== Bookings ==========

// ListBookings accepts an optional ?status= filter.
func (h *DashboardHandler) ListBookings(c *gin.Context) {
	status := domain.BookingStatus(c.Query("status"))
	bookings, err := h.svc.ListBookings(c.Request.Context(), middleware.MustGetSession(c), status)
	if err != nil {
		h.fail(c, "failed to list bookings", err)
		return
	}
	response.Success(c, http.StatusOK, "bookings retrieved", bookings)
}

func (h *DashboardHandler) GetBooking(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	booking, err := h.svc.GetBooking(c.Request.Context(), middleware.MustGetSession(c), id)
	if err != nil {
		h.fail(c, "failed to get booking", err)
		return
	}
	response.Success(c, http.StatusOK, "booking retrieved", booking)
}

// UpdateBookingStatus changes the status and answers with the refreshed
// list, keeping the caller's ?status= filter.
func (h *DashboardHandler) UpdateBookingStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req domain.BookingStatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}

	filter := domain.BookingStatus(c.Query("status"))
	bookings, err := h.svc.UpdateBookingStatus(c.Request.Context(), middleware.MustGetSession(c), id, req.Status, filter)
	if err != nil {
		h.fail(c, "failed to update booking status", err)
		return
	}
	response.Success(c, http.StatusOK, "booking status updated", bookings)
}

// ========== Users ==========

func (h *DashboardHandler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context(), middleware.MustGetSession(c), c.Request.URL.Query())
	if err != nil {
		h.fail(c, "failed to list users", err)
		return
	}
	response.Success(c, http.StatusOK, "users retrieved", users)
}

func (h *DashboardHandler) GetUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(c.Request.Context(), middleware.MustGetSession(c), id)
	if err != nil {
		h.fail(c, "failed to get user", err)
		return
	}
	response.Success(c, http.StatusOK, "user retrieved", user)
}

// SetUserActive toggles the account and answers with the refreshed list.
func (h *DashboardHandler) SetUserActive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req struct {
		IsActive *bool `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		response.ValidationError(c, "isActive is required", err)
		return
	}

	users, err := h.svc.SetUserActive(c.Request.Context(), middleware.MustGetSession(c), id, *req.IsActive)
	if err != nil {
		h.fail(c, "failed to update user", err)
		return
	}
	response.Success(c, http.StatusOK, "user updated", users)
}

func (h *DashboardHandler) DeleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), middleware.MustGetSession(c), id); err != nil {
		h.fail(c, "failed to delete user", err)
		return
	}
	response.Success(c, http.StatusOK, "user deleted", nil)
}
