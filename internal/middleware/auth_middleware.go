package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"gocab/internal/services"
	"gocab/internal/utils"

	"github.com/gin-gonic/gin"
)

// AuthRequired validates the bearer token against the session service and
// puts the caller's identity on the request context. Expired or revoked
// sessions answer 401 with a SESSION_EXPIRED code so clients re-login.
func AuthRequired(sessions services.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header required")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			utils.ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", "Bearer token required")
			c.Abort()
			return
		}

		claims, err := sessions.ValidateAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			utils.ErrorResponse(c, http.StatusUnauthorized, "SESSION_EXPIRED", utils.ErrTokenExpired)
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("phone", claims.Phone)
		c.Set("token", tokenString)

		c.Next()
	}
}

// OperatorRequired gates backend-driven endpoints behind the shared operator
// key. An empty configured key keeps the endpoint closed entirely, so a
// deployment that never sets OPERATOR_API_KEY exposes nothing.
func OperatorRequired(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		provided := c.GetHeader("X-Operator-Key")
		if apiKey == "" || provided == "" ||
			subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			utils.ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", utils.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
