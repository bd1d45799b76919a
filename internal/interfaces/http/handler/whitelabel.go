package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/interfaces/http/middleware"
)

// WhiteLabelHandler answers host-based tenant lookups for the frontend.
// Both endpoints always reply 200; hosts without a tenant yield null.
type WhiteLabelHandler struct{}

// NewWhiteLabelHandler creates a new WhiteLabelHandler
func NewWhiteLabelHandler() *WhiteLabelHandler {
	return &WhiteLabelHandler{}
}

// BusinessID handles GET /whitelabel/business-id
// @Summary      Business id of the request host
// @Tags         whitelabel
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /whitelabel/business-id [get]
func (h *WhiteLabelHandler) BusinessID(c *gin.Context) {
	res := middleware.GetTenant(c)
	if res == nil {
		c.JSON(http.StatusOK, gin.H{"businessId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"businessId": res.BusinessID.String()})
}

// Theme handles GET /whitelabel/theme
// @Summary      Theme of the request host
// @Tags         whitelabel
// @Produce      json
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Router       /whitelabel/theme [get]
func (h *WhiteLabelHandler) Theme(c *gin.Context) {
	res := middleware.GetTenant(c)
	if res == nil {
		c.JSON(http.StatusOK, gin.H{"theme": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": res.Theme})
}
