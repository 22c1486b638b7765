package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"adwiz/pkg/utils"
)

// SessionAuthMiddleware requires a bearer session token whose session id
// matches the :id path parameter.
func SessionAuthMiddleware(tokens *utils.SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired session token")
			c.Abort()
			return
		}
		if claims.SessionID != c.Param("id") {
			utils.RespondError(c, http.StatusUnauthorized, "Session token does not match session")
			c.Abort()
			return
		}

		c.Set("session_id", claims.SessionID)
		c.Next()
	}
}
