package web

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"biztrack/internal/auth"
)

// AuthMiddleware rejects requests without a valid bearer token and stores
// the caller's identity in the request context.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			writeError(c, http.StatusUnauthorized, "authorization header is required", "UNAUTHORIZED")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			writeError(c, http.StatusUnauthorized, "authorization header must start with Bearer", "UNAUTHORIZED")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			writeError(c, http.StatusUnauthorized, "invalid or expired token", "UNAUTHORIZED")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("role", claims.Role)
		c.Next()
	}
}
