package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/midcare/pflegedoc/internal/domain/staff"
)

// RequireAdmin guards the destructive admin-only routes (client
// delete, staff access edits). The record store itself does not check
// roles; the authorization predicate lives here at the edge.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := RoleFromContext(c)

		if !ok || role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "unauthorized",
					"message": "Missing identity context",
				},
			})
			return
		}

		if staff.Role(role) != staff.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "forbidden",
					"message": "Admin role required",
				},
			})
			return
		}

		c.Next()
	}
}
