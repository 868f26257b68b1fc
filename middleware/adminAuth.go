package middleware

import (
	"net/http"

	"hively/models"

	"github.com/gin-gonic/gin"
)

// RequireAdmin gates a route group on the admin role claim. Must run after
// JWTAuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get("role")
		if role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next()
	}
}
