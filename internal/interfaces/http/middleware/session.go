package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/infrastructure/auth"
	"github.com/glambooking/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// PrincipalKey is the gin context key holding the *identity.Principal
const PrincipalKey = "principal"

// TokenValidator validates session tokens
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Session reads the session token from the Authorization header or the session
// cookie. A valid token stores the principal; a missing or invalid one leaves
// the request anonymous. Routes that need a caller add RequireSession.
func Session(tokens TokenValidator, cookieName string, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		token := auth.BearerToken(c.GetHeader("Authorization"))
		if token == "" && cookieName != "" {
			token, _ = c.Cookie(cookieName)
		}
		if token == "" {
			c.Next()
			return
		}

		claims, err := tokens.Validate(token)
		if err != nil {
			if !errors.Is(err, auth.ErrExpiredToken) {
				log.Debug("Rejected session token",
					zap.String("request_id", c.GetString(RequestIDKey)),
					zap.Error(err),
				)
			}
			c.Next()
			return
		}

		principal := claims.Principal()
		c.Set(PrincipalKey, principal)
		c.Request = c.Request.WithContext(logger.WithPrincipal(c.Request.Context(), principal.ExternalID))
		c.Next()
	}
}

// RequireSession aborts with 401 when no principal was authenticated
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetPrincipal(c).IsAuthenticated() {
			abort(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated principal, or nil
func GetPrincipal(c *gin.Context) *identity.Principal {
	v, ok := c.Get(PrincipalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*identity.Principal)
	return p
}
