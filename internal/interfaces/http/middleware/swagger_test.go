package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/domain/identity"
	"github.com/glambooking/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func TestSwaggerProtection(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.SwaggerConfig
		remoteAddr string
		signedIn   bool
		wantCode   int
		wantBody   string
	}{
		{"disabled", config.SwaggerConfig{}, "10.0.0.1:1234", true, http.StatusNotFound, `{"error":"Not found"}`},
		{"open", config.SwaggerConfig{Enabled: true}, "203.0.113.9:1234", false, http.StatusOK, `{"ok":true}`},
		{"exact ip allowed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1"}}, "10.0.0.1:1234", false, http.StatusOK, `{"ok":true}`},
		{"cidr allowed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.168.0.0/16"}}, "192.168.4.20:1234", false, http.StatusOK, `{"ok":true}`},
		{"ip not listed", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.1", "192.168.0.0/16"}}, "203.0.113.9:1234", true, http.StatusForbidden, `{"error":"Forbidden"}`},
		{"garbage entries allow nobody", config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"not-an-ip", "10.0.0.0/99"}}, "10.0.0.1:1234", true, http.StatusForbidden, `{"error":"Forbidden"}`},
		{"auth required without session", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "10.0.0.1:1234", false, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
		{"auth required with session", config.SwaggerConfig{Enabled: true, RequireAuth: true}, "10.0.0.1:1234", true, http.StatusOK, `{"ok":true}`},
		{"ip and auth combined", config.SwaggerConfig{Enabled: true, RequireAuth: true, AllowedIPs: []string{"10.0.0.0/8"}}, "10.1.2.3:1234", false, http.StatusUnauthorized, `{"error":"Unauthorized"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			signedIn := tt.signedIn
			r.Use(func(c *gin.Context) {
				if signedIn {
					c.Set(PrincipalKey, &identity.Principal{ExternalID: "user_1"})
				}
				c.Next()
			})
			r.GET("/swagger/*any", SwaggerProtection(tt.cfg, RequireSession()), func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"ok": true})
			})

			req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestIsIPAllowed(t *testing.T) {
	ips, nets := parseAllowList([]string{" 10.0.0.1 ", "2001:db8::/32"})

	assert.True(t, isIPAllowed(net.ParseIP("10.0.0.1"), ips, nets))
	assert.True(t, isIPAllowed(net.ParseIP("2001:db8::5"), ips, nets))
	assert.False(t, isIPAllowed(net.ParseIP("10.0.0.2"), ips, nets))
	assert.False(t, isIPAllowed(nil, ips, nets))
}
