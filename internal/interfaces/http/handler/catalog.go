package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appcatalog "github.com/glambooking/backend/internal/application/catalog"
	"go.uber.org/zap"
)

// CatalogHandler serves owner-side service and addon creation
type CatalogHandler struct {
	BaseHandler
	catalog *appcatalog.Service
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(catalog *appcatalog.Service, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{BaseHandler: newBaseHandler(logger), catalog: catalog}
}

// CreateService handles POST /services/create
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateServiceRequest true "Request body"
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /services/create [post]
func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req appcatalog.CreateServiceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.BusinessID == nil {
		var ok bool
		if req.BusinessID, ok = h.businessIDQuery(c); !ok {
			return
		}
	}
	svc, err := h.catalog.CreateService(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"service": svc})
}

// CreateAddon handles POST /services/:serviceId/addons
// @Summary      Create a service addon
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        request body appcatalog.CreateAddonRequest true "Request body"
// @Param        serviceId path string true "Service id"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /services/{serviceId}/addons [post]
func (h *CatalogHandler) CreateAddon(c *gin.Context) {
	serviceID, ok := h.pathID(c, "serviceId", "Service not found")
	if !ok {
		return
	}
	var req appcatalog.CreateAddonRequest
	if !h.bindJSON(c, &req) {
		return
	}
	addon, err := h.catalog.CreateAddon(c.Request.Context(), principal(c), serviceID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"addon": addon})
}
