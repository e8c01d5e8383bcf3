package middleware

import (
	"net/http"
	"strings"

	"devconnect/auth"

	"github.com/gin-gonic/gin"
)

// Context keys the guard populates for downstream handlers.
const (
	CtxUserID     = "userId"
	CtxUserName   = "userName"
	CtxUserAvatar = "userAvatar"
)

// AuthRequired rejects the request with 401 before the handler runs unless
// the Authorization header carries a valid bearer token. On success the
// token's identity is placed on the gin context.
func AuthRequired(creds *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No authorization token provided"})
			c.Abort()
			return
		}

		// Tokens are issued as "bearer <jwt>"; accept any casing of the
		// scheme word.
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must be: bearer <token>"})
			c.Abort()
			return
		}

		claims, err := creds.ParseToken(parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token validation failed"})
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.ID)
		c.Set(CtxUserName, claims.Name)
		c.Set(CtxUserAvatar, claims.Avatar)

		c.Next()
	}
}
