package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/application/tenancy"
	"github.com/glambooking/backend/internal/infrastructure/logger"
)

// TenantKey is the gin context key holding the host's *tenancy.Resolution
const TenantKey = "tenant"

// HostResolver maps a request host to a white-label tenant
type HostResolver interface {
	Resolve(ctx context.Context, host string) *tenancy.Resolution
}

// TenantHost resolves the request host on every request. It never aborts:
// hosts without an active white label simply carry no tenant.
func TenantHost(resolver HostResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if res := resolver.Resolve(c.Request.Context(), c.Request.Host); res != nil {
			c.Set(TenantKey, res)
			c.Request = c.Request.WithContext(logger.WithBusinessID(c.Request.Context(), res.BusinessID.String()))
		}
		c.Next()
	}
}

// GetTenant returns the tenant resolved for the request host, or nil
func GetTenant(c *gin.Context) *tenancy.Resolution {
	v, ok := c.Get(TenantKey)
	if !ok {
		return nil
	}
	res, _ := v.(*tenancy.Resolution)
	return res
}
