// internal/interfaces/http/middleware/tenant.go
package middleware

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
)

const tenantContextKey = "tenant"

// slug rules match what the dashboard assigns: lowercase, digits, hyphens
var tenantSlugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// Tenant validates the :tenant route parameter and stores the slug in the
// request context. Every storefront route is scoped to exactly one
// tenant.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("tenant")
		if len(slug) > 64 || !tenantSlugPattern.MatchString(slug) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid store identifier",
			})
			c.Abort()
			return
		}

		c.Set(tenantContextKey, slug)
		c.Next()
	}
}

// GetTenantFromContext returns the tenant slug set by the Tenant
// middleware
func GetTenantFromContext(c *gin.Context) string {
	return c.GetString(tenantContextKey)
}
