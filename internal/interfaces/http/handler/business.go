package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appbusiness "github.com/glambooking/backend/internal/application/business"
	appteam "github.com/glambooking/backend/internal/application/team"
	"go.uber.org/zap"
)

// BusinessHandler serves the owner dashboard endpoints under /business
type BusinessHandler struct {
	BaseHandler
	businesses *appbusiness.Service
	team       *appteam.Service
}

// NewBusinessHandler creates a new BusinessHandler
func NewBusinessHandler(businesses *appbusiness.Service, team *appteam.Service, logger *zap.Logger) *BusinessHandler {
	return &BusinessHandler{
		BaseHandler: newBaseHandler(logger),
		businesses:  businesses,
		team:        team,
	}
}

// Info handles GET /business/info
// @Summary      Business profile
// @Tags         business
// @Produce      json
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/info [get]
func (h *BusinessHandler) Info(c *gin.Context) {
	businessID, ok := h.businessIDQuery(c)
	if !ok {
		return
	}
	resp, err := h.businesses.Info(c.Request.Context(), principal(c), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": resp})
}

// Staff handles GET /business/staff
// @Summary      Business staff
// @Tags         business
// @Produce      json
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/staff [get]
func (h *BusinessHandler) Staff(c *gin.Context) {
	businessID, ok := h.businessIDQuery(c)
	if !ok {
		return
	}
	staff, err := h.team.Staff(c.Request.Context(), principal(c), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"staff": staff})
}

// Subscription handles GET /business/subscription
// @Summary      Subscription access decision
// @Tags         business
// @Produce      json
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/subscription [get]
func (h *BusinessHandler) Subscription(c *gin.Context) {
	businessID, ok := h.businessIDQuery(c)
	if !ok {
		return
	}
	decision, err := h.businesses.Subscription(c.Request.Context(), principal(c), businessID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": decision})
}

// UpdateWhiteLabel handles PUT /business/whitelabel
// @Summary      Update white-label settings
// @Tags         whitelabel
// @Accept       json
// @Produce      json
// @Param        request body appbusiness.UpdateWhiteLabelRequest true "Request body"
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/whitelabel [put]
func (h *BusinessHandler) UpdateWhiteLabel(c *gin.Context) {
	var req appbusiness.UpdateWhiteLabelRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.BusinessID == nil {
		var ok bool
		if req.BusinessID, ok = h.businessIDQuery(c); !ok {
			return
		}
	}
	wl, err := h.businesses.UpdateWhiteLabel(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whiteLabel": wl})
}

// LogoUpload handles POST /business/whitelabel/logo-upload
// @Summary      Presign a logo upload
// @Tags         whitelabel
// @Accept       json
// @Produce      json
// @Param        request body appbusiness.LogoUploadRequest true "Request body"
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/whitelabel/logo-upload [post]
func (h *BusinessHandler) LogoUpload(c *gin.Context) {
	var req appbusiness.LogoUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.BusinessID == nil {
		var ok bool
		if req.BusinessID, ok = h.businessIDQuery(c); !ok {
			return
		}
	}
	upload, err := h.businesses.PresignLogo(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, upload)
}
