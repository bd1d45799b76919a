package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/application/access"
	"github.com/glambooking/backend/internal/domain/identity"
)

// SuperAdminVerifier decides whether a principal is a platform super-admin
type SuperAdminVerifier interface {
	VerifySuperAdmin(ctx context.Context, principal *identity.Principal) access.SuperAdminResult
}

// RequireSuperAdmin aborts with the verifier's status and error unless the
// caller is a super-admin
func RequireSuperAdmin(verifier SuperAdminVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := verifier.VerifySuperAdmin(c.Request.Context(), GetPrincipal(c))
		if !result.Authorized {
			abort(c, result.Status, result.Error)
			return
		}
		c.Next()
	}
}
