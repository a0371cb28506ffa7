package system_healthcheck

import (
	"net/http"

	"picktask-backend/internal/util/logger"

	"github.com/gin-gonic/gin"
)

type HealthcheckController struct {
	healthcheckService *HealthcheckService
}

func (c *HealthcheckController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/system/health", c.CheckHealth)
}

// CheckHealth
// @Summary Check system health
// @Description Checks that the database and the session store respond
// @Tags system/health
// @Produce json
// @Success 200 {object} HealthcheckResponse
// @Failure 503 {object} HealthcheckResponse
// @Router /system/health [get]
func (c *HealthcheckController) CheckHealth(ctx *gin.Context) {
	if err := c.healthcheckService.IsHealthy(ctx.Request.Context()); err != nil {
		logger.GetLogger().Warn("Healthcheck failed", "error", err)
		ctx.JSON(http.StatusServiceUnavailable, HealthcheckResponse{Status: err.Error()})
		return
	}

	ctx.JSON(http.StatusOK, HealthcheckResponse{Status: "Application is healthy"})
}
