package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/skybook/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const usernameKey = "username"
const sessionTokenKey = "session_token"

// SessionMiddleware resolves the Bearer session token to a username and stores
// it on the context. Handlers pass the username explicitly into every service call.
func SessionMiddleware(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		username, err := service.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(usernameKey, username)
		c.Set(sessionTokenKey, token)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(usernameKey)
}
