// Package readonly turns the catalog into a browse-only mirror.
package readonly

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKey is set on every request so templates can hide editing links.
const ContextKey = "read_only"

const blockedMessage = "The catalog is read-only"

// Middleware blocks every write request while enabled.
type Middleware struct {
	enabled bool
}

func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{enabled: enabled}
}

func (m *Middleware) IsEnabled() bool {
	return m.enabled
}

// Handler lets GET, HEAD and OPTIONS through and answers anything else with 403.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKey, m.enabled)
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		m.respondBlocked(c)
	}
}

func (m *Middleware) respondBlocked(c *gin.Context) {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     blockedMessage,
			"read_only": true,
		})
		return
	}
	c.String(http.StatusForbidden, blockedMessage)
	c.Abort()
}

// Enabled reports whether the request runs in read-only mode.
func Enabled(c *gin.Context) bool {
	return c.GetBool(ContextKey)
}
