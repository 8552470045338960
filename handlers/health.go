package handlers

import (
	"net/http"

	"rideshare/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last health check of the backing services.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	state := "ok"
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(code, gin.H{"status": state, "components": status.Components, "checkedAt": status.CheckedAt})
}
