package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/infrastructure/telemetry"
)

// ProfilingLabels tags the CPU and allocation samples of each request with its
// route, method and white-label business so profiles can be sliced per tenant.
func ProfilingLabels(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		labels := map[string]string{
			telemetry.ProfilingLabelRoute:  route,
			telemetry.ProfilingLabelMethod: c.Request.Method,
		}
		if res := GetTenant(c); res != nil {
			labels[telemetry.ProfilingLabelBusinessID] = res.BusinessID.String()
		}
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}
