package auth

import "github.com/gin-gonic/gin"

const (
	ctxAccountID    = "accountID"
	ctxAccountEmail = "accountEmail"
	ctxAccountRole  = "accountRole"
)

// GetAccountID returns the authenticated account's ID or empty string.
func GetAccountID(c *gin.Context) string {
	return getString(c, ctxAccountID)
}

// GetEmail returns the authenticated account's email or empty string.
func GetEmail(c *gin.Context) string {
	return getString(c, ctxAccountEmail)
}

// GetRole returns the authenticated account's role or empty string.
func GetRole(c *gin.Context) string {
	return getString(c, ctxAccountRole)
}

func getString(c *gin.Context, key string) string {
	if v, ok := c.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
