package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthController exposes liveness and readiness probes
type HealthController struct {
	pinger Pinger
	logger *logger.Logger
}

func NewHealthController(pinger Pinger, log *logger.Logger) *HealthController {
	return &HealthController{
		pinger: pinger,
		logger: log.WithComponent("health_controller"),
	}
}

// RegisterRoutes registers the health routes with Gin
func (c *HealthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/health/live", c.Live)
	router.GET("/health/ready", c.Ready)
}

func (c *HealthController) Live(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (c *HealthController) Ready(ctx *gin.Context) {
	if err := c.pinger.Ping(ctx); err != nil {
		c.logger.ErrorWithError(err, "store ping failed")
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "db": false})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ready", "db": true})
}
