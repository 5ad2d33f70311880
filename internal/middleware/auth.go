package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"finvoice/internal/service"
)

const (
	ContextKeyUsername = "username"
	ContextKeyClaims   = "claims"
)

// AuthMiddleware returns Gin middleware that validates JWT tokens and injects
// the operator identity into the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "missing or invalid authorization header"},
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := authService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   gin.H{"code": "UNAUTHORIZED", "message": "invalid or expired token"},
			})
			return
		}

		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetUsername extracts the operator username from the Gin context.
func GetUsername(c *gin.Context) string {
	val, exists := c.Get(ContextKeyUsername)
	if !exists {
		return ""
	}
	return val.(string)
}
