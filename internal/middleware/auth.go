package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"linkadmin/internal/services"
)

// ContextEmailKey is where the authenticated subject lands in the gin
// context.
const ContextEmailKey = "user_email"

// AuthMiddleware rejects requests whose bearer token is missing, revoked, or
// fails signature/expiry checks. The blacklist is consulted first: a token
// can be cryptographically fine and still logged out.
func AuthMiddleware(tokens services.TokenService, blacklist services.BlacklistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])

		revoked, err := blacklist.IsTokenBlacklisted(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		email, err := tokens.ExtractEmail(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextEmailKey, email)
		c.Next()
	}
}
