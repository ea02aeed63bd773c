// SPDX-License-Identifier: MIT
package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"
)

// IPFilterMiddleware blocks requests based on client IP address. Any
// address inside blocklist is rejected; a non-empty allowlist rejects
// everything outside it. Entries that are not valid CIDRs are ignored.
func IPFilterMiddleware(blocklist, allowlist []string) gin.HandlerFunc {
	blocked := parseCIDRs(blocklist)
	allowed := parseCIDRs(allowlist)

	return func(c *gin.Context) {
		clientIP := net.ParseIP(c.ClientIP())
		if clientIP == nil {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if containsIP(blocked, clientIP) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		if len(allowed) > 0 && !containsIP(allowed, clientIP) {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}

		c.Next()
	}
}

func parseCIDRs(entries []string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(entries))
	for _, cidr := range entries {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err == nil {
			nets = append(nets, ipNet)
		}
	}
	return nets
}

func containsIP(nets []*net.IPNet, ip net.IP) bool {
	for _, ipNet := range nets {
		if ipNet.Contains(ip) {
			return true
		}
	}
	return false
}
