package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	api_models "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models/api"
)

// respond writes the uniform envelope. The HTTP status mirrors the
// application code, except 204: a "updated" envelope still carries a
// body, so it travels as HTTP 200.
func respond(ctx *gin.Context, env api_models.Envelope) {
	status := env.Code
	if status == 204 {
		status = http.StatusOK
	}
	ctx.JSON(status, env)
}
