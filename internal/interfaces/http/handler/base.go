// Package handler contains the gin handlers of the booking API. Every failure
// is answered with the {"error": "<message>"} envelope.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/domain/shared"
	"github.com/glambooking/backend/internal/infrastructure/logger"
	"github.com/glambooking/backend/internal/interfaces/http/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const internalErrorMessage = "Internal server error"

var statusByCode = map[string]int{
	shared.CodeUnauthenticated:      http.StatusUnauthorized,
	shared.CodeForbidden:            http.StatusForbidden,
	shared.CodeSubscriptionRequired: http.StatusForbidden,
	shared.CodeNotFound:             http.StatusNotFound,
	shared.CodeNoProfile:            http.StatusNotFound,
	shared.CodeGone:                 http.StatusGone,
	shared.CodeValidation:           http.StatusBadRequest,
	shared.CodeInvalidInput:         http.StatusBadRequest,
	shared.CodeAlreadyExists:        http.StatusConflict,
	shared.CodeInvalidState:         http.StatusConflict,
}

// StatusFor returns the HTTP status of a domain error code; unknown codes are 500
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// BaseHandler provides common handler utilities
type BaseHandler struct {
	logger *zap.Logger
}

func newBaseHandler(log *zap.Logger) BaseHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return BaseHandler{logger: log}
}

// Error sends the error envelope
func (h *BaseHandler) Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// BadRequest sends a 400 response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, message)
}

// HandleError maps domain errors to their status. Anything else is logged with
// the request id and answered with a generic 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		if status := StatusFor(domainErr.Code); status != http.StatusInternalServerError {
			h.Error(c, status, domainErr.Message)
			return
		}
	}

	_ = c.Error(err)
	logger.WithTraceContext(c.Request.Context(), h.logger).Error("Request failed",
		zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, internalErrorMessage)
}

// bindJSON binds the body and answers 400 on failure
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return false
	}
	return true
}

// bindQuery binds query parameters and answers 400 on failure
func (h *BaseHandler) bindQuery(c *gin.Context, req any) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		h.BadRequest(c, middleware.ValidationMessage(err))
		return false
	}
	return true
}

// pathID parses a uuid path parameter. Malformed ids are answered with notFound,
// since no such resource can exist.
func (h *BaseHandler) pathID(c *gin.Context, name, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.Error(c, http.StatusNotFound, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// businessIDQuery reads the optional ?businessId tenant selector
func (h *BaseHandler) businessIDQuery(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("businessId")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "businessId must be a valid UUID")
		return nil, false
	}
	return &id, true
}

// principal returns the authenticated caller; RequireSession guarantees it on protected routes
func principal(c *gin.Context) *identity.Principal {
	return middleware.GetPrincipal(c)
}
