package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/application/tenancy"
	"github.com/glambooking/backend/internal/infrastructure/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type hostMap map[string]*tenancy.Resolution

func (m hostMap) Resolve(_ context.Context, host string) *tenancy.Resolution {
	return m[host]
}

func TestTenantHost(t *testing.T) {
	businessID := uuid.New()
	resolver := hostMap{"foo.glambooking.com": {BusinessID: businessID, Subdomain: "foo"}}

	r := gin.New()
	r.Use(TenantHost(resolver))
	r.GET("/tenant", func(c *gin.Context) {
		res := GetTenant(c)
		if res == nil {
			c.JSON(http.StatusOK, gin.H{"businessId": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"businessId": res.BusinessID.String(),
			"ctx":        logger.GetBusinessID(c.Request.Context()),
		})
	})

	t.Run("resolved host", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tenant", nil)
		req.Host = "foo.glambooking.com"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"businessId":"`+businessID.String()+`","ctx":"`+businessID.String()+`"}`, w.Body.String())
	})

	t.Run("unknown host continues without tenant", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tenant", nil)
		req.Host = "bar.glambooking.com"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"businessId":null}`, w.Body.String())
	})
}
