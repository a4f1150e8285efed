package dashboard

import (
	"net/http"

	"tour-admin/internal/middleware"
	"tour-admin/internal/pkg/response"
	"tour-admin/pkg/domain"

	"github.com/gin-gonic/gin"
)

// ========== Vehicles ==========

func (h *DashboardHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.svc.ListVehicles(c.Request.Context(), middleware.MustGetSession(c), c.Request.URL.Query())
	if err != nil {
		h.fail(c, "failed to list vehicles", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicles retrieved", vehicles)
}

func (h *DashboardHandler) GetVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	vehicle, err := h.svc.GetVehicle(c.Request.Context(), middleware.MustGetSession(c), id)
	if err != nil {
		h.fail(c, "failed to get vehicle", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle retrieved", vehicle)
}

func (h *DashboardHandler) CreateVehicle(c *gin.Context) {
	var req domain.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	vehicle, err := h.svc.CreateVehicle(c.Request.Context(), middleware.MustGetSession(c), req)
	if err != nil {
		h.fail(c, "failed to create vehicle", err)
		return
	}
	response.Success(c, http.StatusCreated, "vehicle created", vehicle)
}

func (h *DashboardHandler) UpdateVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req domain.VehicleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	vehicle, err := h.svc.UpdateVehicle(c.Request.Context(), middleware.MustGetSession(c), id, req)
	if err != nil {
		h.fail(c, "failed to update vehicle", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle updated", vehicle)
}

func (h *DashboardHandler) DeleteVehicle(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteVehicle(c.Request.Context(), middleware.MustGetSession(c), id); err != nil {
		h.fail(c, "failed to delete vehicle", err)
		return
	}
	response.Success(c, http.StatusOK, "vehicle deleted", nil)
}

// ========== Tours ==========

func (h *DashboardHandler) ListTours(c *gin.Context) {
	tours, err := h.svc.ListTours(c.Request.Context(), middleware.MustGetSession(c), c.Request.URL.Query())
	if err != nil {
		h.fail(c, "failed to list tours", err)
		return
	}
	response.Success(c, http.StatusOK, "tours retrieved", tours)
}

func (h *DashboardHandler) GetTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	tour, err := h.svc.GetTour(c.Request.Context(), middleware.MustGetSession(c), id)
	if err != nil {
		h.fail(c, "failed to get tour", err)
		return
	}
	response.Success(c, http.StatusOK, "tour retrieved", tour)
}

func (h *DashboardHandler) CreateTour(c *gin.Context) {
	var req domain.TourInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	tour, err := h.svc.CreateTour(c.Request.Context(), middleware.MustGetSession(c), req)
	if err != nil {
		h.fail(c, "failed to create tour", err)
		return
	}
	response.Success(c, http.StatusCreated, "tour created", tour)
}

func (h *DashboardHandler) UpdateTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req domain.TourInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	tour, err := h.svc.UpdateTour(c.Request.Context(), middleware.MustGetSession(c), id, req)
	if err != nil {
		h.fail(c, "failed to update tour", err)
		return
	}
	response.Success(c, http.StatusOK, "tour updated", tour)
}

func (h *DashboardHandler) DeleteTour(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteTour(c.Request.Context(), middleware.MustGetSession(c), id); err != nil {
		h.fail(c, "failed to delete tour", err)
		return
	}
	response.Success(c, http.StatusOK, "tour deleted", nil)
}

// ========== Cities ==========

func (h *DashboardHandler) ListCities(c *gin.Context) {
	cities, err := h.svc.ListCities(c.Request.Context(), middleware.MustGetSession(c))
	if err != nil {
		h.fail(c, "failed to list cities", err)
		return
	}
	response.Success(c, http.StatusOK, "cities retrieved", cities)
}

func (h *DashboardHandler) CreateCity(c *gin.Context) {
	var req domain.CityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	city, err := h.svc.CreateCity(c.Request.Context(), middleware.MustGetSession(c), req)
	if err != nil {
		h.fail(c, "failed to create city", err)
		return
	}
	response.Success(c, http.StatusCreated, "city created", city)
}

func (h *DashboardHandler) UpdateCity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req domain.CityInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request", err)
		return
	}
	city, err := h.svc.UpdateCity(c.Request.Context(), middleware.MustGetSession(c), id, req)
	if err != nil {
		h.fail(c, "failed to update city", err)
		return
	}
	response.Success(c, http.StatusOK, "city updated", city)
}

func (h *DashboardHandler) DeleteCity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCity(c.Request.Context(), middleware.MustGetSession(c), id); err != nil {
		h.fail(c, "failed to delete city", err)
		return
	}
	response.Success(c, http.StatusOK, "city deleted", nil)
}
