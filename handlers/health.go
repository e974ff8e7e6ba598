package handlers

import (
	"net/http"

	"rentwatch/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last result of the background health monitor.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	if !status.Healthy() {
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}
	c.JSON(http.StatusOK, status)
}
