package controllers

import (
	"github.com/gin-gonic/gin"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
	api_models "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models/api"
	interfaces "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Interfaces"
)

// LogController serves the audit trail. Read-only: log entries are
// append-only and survive their sensor, so entries for deleted
// sensors are still served here.
type LogController struct {
	logRepo interfaces.LogRepository
	logger  *logger.Logger
}

func NewLogController(logRepo interfaces.LogRepository, log *logger.Logger) *LogController {
	return &LogController{
		logRepo: logRepo,
		logger:  log.WithComponent("log_controller"),
	}
}

// RegisterRoutes registers the log routes with Gin
func (c *LogController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/Log/GetAll/:id_data", c.GetAll)
}

func (c *LogController) GetAll(ctx *gin.Context) {
	dataID := ctx.Param("id_data")

	entries, err := c.logRepo.ListByData(ctx, dataID)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while fetching data", []gin.H{}))
		return
	}
	if len(entries) == 0 {
		respond(ctx, api_models.Failed(404, "no log is found", []gin.H{}))
		return
	}

	respond(ctx, api_models.OK(entries))
}
