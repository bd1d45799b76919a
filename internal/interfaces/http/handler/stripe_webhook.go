package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	appbilling "github.com/glambooking/backend/internal/application/billing"
	"go.uber.org/zap"
)

// maxWebhookPayloadSize caps Stripe payloads at 64 KiB
const maxWebhookPayloadSize = 65536

// StripeWebhookHandler receives Stripe events. It is authenticated by the
// Stripe-Signature header, not by a session.
type StripeWebhookHandler struct {
	BaseHandler
	webhooks *appbilling.WebhookService
}

// NewStripeWebhookHandler creates a new StripeWebhookHandler
func NewStripeWebhookHandler(webhooks *appbilling.WebhookService, logger *zap.Logger) *StripeWebhookHandler {
	return &StripeWebhookHandler{BaseHandler: newBaseHandler(logger), webhooks: webhooks}
}

// Handle handles POST /webhooks/stripe. Store failures reply 500 so Stripe retries.
// @Summary      Stripe webhook receiver
// @Tags         webhooks
// @Produce      json
// @Param        Stripe-Signature header string true "Stripe signature"
// @Success      200 {object} map[string]interface{}
// @Failure      400 {object} map[string]string
// @Failure      413 {object} map[string]string
// @Failure      500 {object} map[string]string
// @Router       /webhooks/stripe [post]
func (h *StripeWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, "Payload too large")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.BadRequest(c, "Missing Stripe-Signature header")
		return
	}

	result, err := h.webhooks.Process(c.Request.Context(), payload, signature)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"received":  true,
		"eventId":   result.EventID,
		"eventType": result.EventType,
		"processed": result.Processed,
	})
}
