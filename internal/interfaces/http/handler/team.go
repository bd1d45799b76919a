package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appteam "github.com/glambooking/backend/internal/application/team"
	"go.uber.org/zap"
)

const invitationNotFound = "Invitation not found"

// TeamHandler serves the team invitation lifecycle
type TeamHandler struct {
	BaseHandler
	team *appteam.Service
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(team *appteam.Service, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{BaseHandler: newBaseHandler(logger), team: team}
}

// CreateInvitation handles POST /business/team/invitations
// @Summary      Invite a team member
// @Tags         team
// @Accept       json
// @Produce      json
// @Param        request body appteam.CreateInvitationRequest true "Request body"
// @Param        businessId query string false "Business id, defaults to the caller's business"
// @Success      201 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/team/invitations [post]
func (h *TeamHandler) CreateInvitation(c *gin.Context) {
	var req appteam.CreateInvitationRequest
	if !h.bindJSON(c, &req) {
		return
	}
	if req.BusinessID == nil {
		var ok bool
		if req.BusinessID, ok = h.businessIDQuery(c); !ok {
			return
		}
	}
	inv, err := h.team.CreateInvitation(c.Request.Context(), principal(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"invitation": inv})
}

// GetInvitation handles GET /business/team/invitation/:id. It is public so
// recipients can see the invitation before signing in.
// @Summary      Get an invitation
// @Tags         team
// @Produce      json
// @Param        id path string true "Invitation id"
// @Success      200 {object} map[string]interface{}
// @Failure      404 {object} map[string]string
// @Failure      410 {object} map[string]string
// @Router       /business/team/invitation/{id} [get]
func (h *TeamHandler) GetInvitation(c *gin.Context) {
	id, ok := h.pathID(c, "id", invitationNotFound)
	if !ok {
		return
	}
	inv, err := h.team.GetInvitation(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"invitation": inv})
}

// CancelInvitation handles POST /business/team/invitation/:id/cancel
// @Summary      Cancel an invitation
// @Tags         team
// @Produce      json
// @Param        id path string true "Invitation id"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/team/invitation/{id}/cancel [post]
func (h *TeamHandler) CancelInvitation(c *gin.Context) {
	id, ok := h.pathID(c, "id", invitationNotFound)
	if !ok {
		return
	}
	if err := h.team.CancelInvitation(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CompleteInvitation handles POST /business/team/invitation/:id/complete
// @Summary      Accept an invitation
// @Tags         team
// @Produce      json
// @Param        id path string true "Invitation id"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]string
// @Failure      403 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Failure      409 {object} map[string]string
// @Failure      410 {object} map[string]string
// @Security     BearerAuth
// @Router       /business/team/invitation/{id}/complete [post]
func (h *TeamHandler) CompleteInvitation(c *gin.Context) {
	id, ok := h.pathID(c, "id", invitationNotFound)
	if !ok {
		return
	}
	if err := h.team.CompleteInvitation(c.Request.Context(), principal(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
