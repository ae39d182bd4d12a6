package middleware

import (
	"net/http"
	"strings"

	"villa-backend/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextAdminID    = "adminId"
	ContextAdminEmail = "adminEmail"
	ContextClaims     = "adminClaims"
)

// RequireAdmin accepts "Authorization: Bearer <jwt>" signed with secret.
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header missing"})
			return
		}

		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid Authorization header"})
			return
		}

		claims, err := utils.ValidateAdminToken(secret, strings.TrimSpace(parts[1]))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			return
		}

		c.Set(ContextAdminID, claims.AdminID)
		c.Set(ContextAdminEmail, claims.Email)
		c.Set(ContextClaims, claims)
		c.Next()
	}
}
