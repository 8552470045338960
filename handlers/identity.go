package handlers

import (
	"net/http"

	"rideshare/middleware"
	"rideshare/models"
	"rideshare/services/session"
	"rideshare/utils"

	"github.com/gin-gonic/gin"
)

// requireIdentity returns the acting user or answers 401.
func requireIdentity(c *gin.Context) (models.Identity, bool) {
	identity, ok := session.CurrentIdentity(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, utils.ErrorResponse{
			Message: "Insufficient authorization",
			Kind:    string(utils.KindAuthorization),
		})
		return models.Identity{}, false
	}
	return identity, true
}

func currentToken(c *gin.Context) string {
	return c.GetString(middleware.TokenKey)
}
