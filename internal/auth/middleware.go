package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/HiroyasuHigashida/sns-backend/internal/repo"
)

const contextKeyUserID = "user_id"

// UserIDFromContext returns the current user ID set by RequireAuth. Empty
// if not set.
func UserIDFromContext(c *gin.Context) string {
	v, ok := c.Get(contextKeyUserID)
	if !ok {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

// RequireAuth returns a middleware that validates the Authorization Bearer
// token and sets the current user ID in context. A token for a user that no
// longer exists is rejected like any other bad token. If missing or
// invalid, responds with 401.
func RequireAuth(tokens *TokenService, users repo.UserRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		userID, err := tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		if _, err := users.GetByID(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set(contextKeyUserID, userID)
		c.Next()
	}
}
