package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jucamargo/juju-library/pkg/helpers"
	"github.com/jucamargo/juju-library/pkg/response"
)

// Auth validates the bearer credential from the Authorization header and
// aborts before any downstream stage when it is missing or invalid. The
// header may carry either "Bearer <token>" or the raw token. On success the
// decoded identity is attached to the context as userID and userEmail.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader("Authorization"))
		if raw == "" {
			response.Error(c, http.StatusUnauthorized, "token not found")
			c.Abort()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))

		claims, err := jwt.Parse(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("userEmail", claims.Email)
		c.Next()
	}
}
