package handlers

import (
	"net/http"

	"meetblock/utils"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports the latest health snapshot of external dependencies.
// Any failing dependency, Mongo or either Redis role, degrades the response.
func HealthCheck(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
