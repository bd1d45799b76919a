package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/glambooking/backend/internal/infrastructure/config"
)

// SwaggerProtection guards the API documentation routes.
//
// A disabled endpoint answers 404. AllowedIPs (single addresses or CIDRs)
// restricts callers by client IP, and RequireAuth runs requireSession before
// the docs are served. Both checks may be combined.
func SwaggerProtection(cfg config.SwaggerConfig, requireSession gin.HandlerFunc) gin.HandlerFunc {
	allowedIPs, allowedNets := parseAllowList(cfg.AllowedIPs)
	restricted := len(cfg.AllowedIPs) > 0

	return func(c *gin.Context) {
		if !cfg.Enabled {
			abort(c, http.StatusNotFound, "Not found")
			return
		}
		if restricted && !isIPAllowed(clientIP(c), allowedIPs, allowedNets) {
			abort(c, http.StatusForbidden, "Forbidden")
			return
		}
		if cfg.RequireAuth && requireSession != nil {
			requireSession(c)
			if c.IsAborted() {
				return
			}
		}
		c.Next()
	}
}

// parseAllowList splits entries into exact IPs and networks. Unparseable entries are ignored.
func parseAllowList(entries []string) ([]net.IP, []*net.IPNet) {
	var ips []net.IP
	var nets []*net.IPNet
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if strings.Contains(entry, "/") {
			if _, network, err := net.ParseCIDR(entry); err == nil {
				nets = append(nets, network)
			}
			continue
		}
		if ip := net.ParseIP(entry); ip != nil {
			ips = append(ips, ip)
		}
	}
	return ips, nets
}

// clientIP honours the engine's trusted proxies and falls back to the socket address
func clientIP(c *gin.Context) net.IP {
	if ip := net.ParseIP(c.ClientIP()); ip != nil {
		return ip
	}
	host, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		host = c.Request.RemoteAddr
	}
	return net.ParseIP(host)
}

func isIPAllowed(ip net.IP, ips []net.IP, nets []*net.IPNet) bool {
	if ip == nil {
		return false
	}
	for _, allowed := range ips {
		if allowed.Equal(ip) {
			return true
		}
	}
	for _, network := range nets {
		if network.Contains(ip) {
			return true
		}
	}
	return false
}
