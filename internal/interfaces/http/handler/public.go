package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appbusiness "github.com/glambooking/backend/internal/application/business"
	appcatalog "github.com/glambooking/backend/internal/application/catalog"
	appteam "github.com/glambooking/backend/internal/application/team"
	"go.uber.org/zap"
)

const businessNotFound = "Business not found"

// PublicHandler serves the unauthenticated customer pages and discovery
type PublicHandler struct {
	BaseHandler
	businesses *appbusiness.Service
	catalog    *appcatalog.Service
	team       *appteam.Service
}

// NewPublicHandler creates a new PublicHandler
func NewPublicHandler(businesses *appbusiness.Service, catalog *appcatalog.Service, team *appteam.Service, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		BaseHandler: newBaseHandler(logger),
		businesses:  businesses,
		catalog:     catalog,
		team:        team,
	}
}

// Discover handles GET /discover/businesses
// @Summary      Discover bookable businesses
// @Tags         discover
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        category query string false "Category filter"
// @Param        search query string false "Search term"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Router       /discover/businesses [get]
func (h *PublicHandler) Discover(c *gin.Context) {
	var req appbusiness.DiscoverRequest
	if !h.bindQuery(c, &req) {
		return
	}
	resp, err := h.businesses.Discover(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Business handles GET /public/business/:businessId
// @Summary      Public business profile
// @Tags         public
// @Produce      json
// @Param        businessId path string true "Business id"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /public/business/{businessId} [get]
func (h *PublicHandler) Business(c *gin.Context) {
	id, ok := h.pathID(c, "businessId", businessNotFound)
	if !ok {
		return
	}
	b, err := h.businesses.PublicBusiness(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": b})
}

// Services handles GET /public/business/:businessId/services
// @Summary      Public service menu
// @Tags         public
// @Produce      json
// @Param        businessId path string true "Business id"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /public/business/{businessId}/services [get]
func (h *PublicHandler) Services(c *gin.Context) {
	id, ok := h.pathID(c, "businessId", businessNotFound)
	if !ok {
		return
	}
	services, err := h.catalog.PublicServices(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// Addons handles GET /public/business/:businessId/services/:serviceId/addons
// @Summary      Public addons of a service
// @Tags         public
// @Produce      json
// @Param        businessId path string true "Business id"
// @Param        serviceId path string true "Service id"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /public/business/{businessId}/services/{serviceId}/addons [get]
func (h *PublicHandler) Addons(c *gin.Context) {
	businessID, ok := h.pathID(c, "businessId", businessNotFound)
	if !ok {
		return
	}
	serviceID, ok := h.pathID(c, "serviceId", "Service not found")
	if !ok {
		return
	}
	addons, err := h.catalog.PublicAddons(c.Request.Context(), businessID, serviceID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"addons": addons})
}

// Staff handles GET /public/business/:businessId/staff
// @Summary      Public staff list
// @Tags         public
// @Produce      json
// @Param        businessId path string true "Business id"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /public/business/{businessId}/staff [get]
func (h *PublicHandler) Staff(c *gin.Context) {
	id, ok := h.pathID(c, "businessId", businessNotFound)
	if !ok {
		return
	}
	staff, err := h.team.PublicStaff(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}
