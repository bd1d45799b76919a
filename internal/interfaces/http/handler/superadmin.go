package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/application/admin"
	appbusiness "github.com/glambooking/backend/internal/application/business"
	appcatalog "github.com/glambooking/backend/internal/application/catalog"
	appteam "github.com/glambooking/backend/internal/application/team"
	"go.uber.org/zap"
)

// SuperAdminHandler serves the platform oversight endpoints. Routes are
// mounted behind middleware.RequireSuperAdmin.
type SuperAdminHandler struct {
	BaseHandler
	admin *admin.Service
}

// NewSuperAdminHandler creates a new SuperAdminHandler
func NewSuperAdminHandler(svc *admin.Service, logger *zap.Logger) *SuperAdminHandler {
	return &SuperAdminHandler{BaseHandler: newBaseHandler(logger), admin: svc}
}

// listing binds the common list query, runs fetch and replies {key: items, total, page, pageSize}
func listing[T any](h *SuperAdminHandler, c *gin.Context, key string, fetch func(admin.ListRequest) (*admin.Page[T], error)) {
	var req admin.ListRequest
	if !h.bindQuery(c, &req) {
		return
	}
	page, err := fetch(req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		key:        page.Items,
		"total":    page.Total,
		"page":     page.Page,
		"pageSize": page.PageSize,
	})
}

// Businesses handles GET /super-admin/businesses
// @Summary      List businesses
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/businesses [get]
func (h *SuperAdminHandler) Businesses(c *gin.Context) {
	listing(h, c, "businesses", func(req admin.ListRequest) (*admin.Page[appbusiness.BusinessResponse], error) {
		return h.admin.Businesses(c.Request.Context(), req)
	})
}

// ToggleBusiness handles POST /super-admin/businesses/:id/toggle
// @Summary      Toggle a business
// @Tags         super-admin
// @Produce      json
// @Param        id path string true "Business id"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/businesses/{id}/toggle [post]
func (h *SuperAdminHandler) ToggleBusiness(c *gin.Context) {
	id, ok := h.pathID(c, "id", businessNotFound)
	if !ok {
		return
	}
	b, err := h.admin.ToggleBusiness(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"business": b})
}

// Clients handles GET /super-admin/clients
// @Summary      List clients
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/clients [get]
func (h *SuperAdminHandler) Clients(c *gin.Context) {
	listing(h, c, "clients", func(req admin.ListRequest) (*admin.Page[admin.ClientResponse], error) {
		return h.admin.Clients(c.Request.Context(), req)
	})
}

// Payouts handles GET /super-admin/payouts
// @Summary      List payouts
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/payouts [get]
func (h *SuperAdminHandler) Payouts(c *gin.Context) {
	listing(h, c, "payouts", func(req admin.ListRequest) (*admin.Page[admin.PayoutResponse], error) {
		return h.admin.Payouts(c.Request.Context(), req)
	})
}

// UpdatePayoutStatus handles POST /super-admin/payouts/:id/status
// @Summary      Set payout status
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Param        request body admin.UpdateStatusRequest true "Request body"
// @Param        id path string true "Payout id"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/payouts/{id}/status [post]
func (h *SuperAdminHandler) UpdatePayoutStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id", "Payout not found")
	if !ok {
		return
	}
	var req admin.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	payout, err := h.admin.UpdatePayoutStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payout": payout})
}

// Services handles GET /super-admin/services
// @Summary      List services
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/services [get]
func (h *SuperAdminHandler) Services(c *gin.Context) {
	listing(h, c, "services", func(req admin.ListRequest) (*admin.Page[appcatalog.ServiceResponse], error) {
		return h.admin.Services(c.Request.Context(), req)
	})
}

// Subscriptions handles GET /super-admin/subscriptions
// @Summary      List subscriptions
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/subscriptions [get]
func (h *SuperAdminHandler) Subscriptions(c *gin.Context) {
	listing(h, c, "subscriptions", func(req admin.ListRequest) (*admin.Page[admin.SubscriptionResponse], error) {
		return h.admin.Subscriptions(c.Request.Context(), req)
	})
}

// Tickets handles GET /super-admin/support-tickets
// @Summary      List support tickets
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/support-tickets [get]
func (h *SuperAdminHandler) Tickets(c *gin.Context) {
	listing(h, c, "tickets", func(req admin.ListRequest) (*admin.Page[admin.TicketResponse], error) {
		return h.admin.Tickets(c.Request.Context(), req)
	})
}

// UpdateTicketStatus handles POST /super-admin/support-tickets/:id/status
// @Summary      Set support ticket status
// @Tags         super-admin
// @Accept       json
// @Produce      json
// @Param        request body admin.UpdateStatusRequest true "Request body"
// @Param        id path string true "Ticket id"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/support-tickets/{id}/status [post]
func (h *SuperAdminHandler) UpdateTicketStatus(c *gin.Context) {
	id, ok := h.pathID(c, "id", "Support ticket not found")
	if !ok {
		return
	}
	var req admin.UpdateStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	ticket, err := h.admin.UpdateTicketStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket})
}

// Invitations handles GET /super-admin/team-invitations
// @Summary      List team invitations
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/team-invitations [get]
func (h *SuperAdminHandler) Invitations(c *gin.Context) {
	listing(h, c, "invitations", func(req admin.ListRequest) (*admin.Page[appteam.InvitationResponse], error) {
		return h.admin.Invitations(c.Request.Context(), req)
	})
}

// WhiteLabels handles GET /super-admin/whitelabels
// @Summary      List white-label configs
// @Tags         super-admin
// @Produce      json
// @Param        page query int false "Page number"
// @Param        pageSize query int false "Page size"
// @Param        search query string false "Search term"
// @Param        status query string false "Status filter"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/whitelabels [get]
func (h *SuperAdminHandler) WhiteLabels(c *gin.Context) {
	listing(h, c, "whiteLabels", func(req admin.ListRequest) (*admin.Page[appbusiness.WhiteLabelResponse], error) {
		return h.admin.WhiteLabels(c.Request.Context(), req)
	})
}

// ToggleWhiteLabel handles POST /super-admin/whitelabels/:id/toggle
// @Summary      Toggle a white-label config
// @Tags         super-admin
// @Produce      json
// @Param        id path string true "White-label config id"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Security     BearerAuth
// @Router       /super-admin/whitelabels/{id}/toggle [post]
func (h *SuperAdminHandler) ToggleWhiteLabel(c *gin.Context) {
	id, ok := h.pathID(c, "id", "White label not found")
	if !ok {
		return
	}
	wl, err := h.admin.ToggleWhiteLabel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"whiteLabel": wl})
}
