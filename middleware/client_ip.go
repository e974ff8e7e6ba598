package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP keys the rate limiter. It takes the first parseable address from
// X-Forwarded-For, then X-Real-IP, then the connection's remote address.
func clientIP(c *gin.Context) string {
	for _, candidate := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip := parseIP(candidate); ip != "" {
			return ip
		}
	}
	if ip := parseIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	if ip := parseIP(c.Request.RemoteAddr); ip != "" {
		return ip
	}
	return c.Request.RemoteAddr
}

// parseIP accepts a bare address or host:port and returns the normalized address.
func parseIP(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if host, _, err := net.SplitHostPort(raw); err == nil {
		raw = host
	}
	ip := net.ParseIP(raw)
	if ip == nil {
		return ""
	}
	return ip.String()
}
