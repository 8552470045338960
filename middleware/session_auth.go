package middleware

import (
	"net/http"
	"strings"

	"rideshare/services/session"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by SessionAuthMiddleware.
const (
	IdentityKey = "identity"
	TokenKey    = "token"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	// Browsers cannot set headers on websocket handshakes.
	if websocketUpgrade(c) {
		return c.Query("token")
	}
	return ""
}

func websocketUpgrade(c *gin.Context) bool {
	return strings.EqualFold(c.GetHeader("Upgrade"), "websocket")
}

// SessionAuthMiddleware resolves the bearer token to the acting user and
// stores it in the request context.
func SessionAuthMiddleware(sessions session.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse{
				Message: "Insufficient authorization",
				Kind:    string(utils.KindAuthorization),
			})
			return
		}

		identity, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			status := http.StatusUnauthorized
			if utils.StatusFor(err) == http.StatusInternalServerError {
				zap.L().Error("Session lookup failed", zap.Error(err))
				status = http.StatusInternalServerError
			}
			c.AbortWithStatusJSON(status, utils.ErrorResponse{
				Message: "Insufficient authorization",
				Kind:    string(utils.KindAuthorization),
			})
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(TokenKey, token)
		c.Request = c.Request.WithContext(session.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}
