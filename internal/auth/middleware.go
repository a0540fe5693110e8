package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Required is a Gin middleware that validates the JWT from
// Authorization: Bearer <token> and stores the claims on the context.
func Required(jwtManager *JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing Authorization header",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid Authorization header format",
			})
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or expired token",
			})
			return
		}

		// Store account info into Gin context for later handlers.
		c.Set(ctxAccountID, claims.AccountID)
		c.Set(ctxAccountEmail, claims.Email)
		c.Set(ctxAccountRole, claims.Role)

		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated account carries one
// of the given roles. Must run after Required.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := GetRole(c)
		for _, role := range roles {
			if current == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error": "permission denied",
		})
	}
}
