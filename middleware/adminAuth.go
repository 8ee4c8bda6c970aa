package middleware

import (
	"net/http"

	"slotbook/models"

	"github.com/gin-gonic/gin"
)

// AdminOnlyMiddleware gates admin endpoints. It must run after
// JWTAuthMiddleware, which sets the userRole context key.
func AdminOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get("userRole")
		if !ok || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
