package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/auth"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/catalog"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/hierarchy"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
	api_models "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models/api"
	interfaces "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Interfaces"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

// DeviceController handles device management requests
type DeviceController struct {
	deviceRepo interfaces.DeviceRepository
	userRepo   interfaces.UserRepository
	catalog    *catalog.Service
	engine     *hierarchy.Engine
	logger     *logger.Logger
}

func NewDeviceController(deviceRepo interfaces.DeviceRepository, userRepo interfaces.UserRepository, catalogService *catalog.Service, engine *hierarchy.Engine, log *logger.Logger) *DeviceController {
	return &DeviceController{
		deviceRepo: deviceRepo,
		userRepo:   userRepo,
		catalog:    catalogService,
		engine:     engine,
		logger:     log.WithComponent("device_controller"),
	}
}

// RegisterRoutes registers the device routes with Gin
func (c *DeviceController) RegisterRoutes(api *gin.RouterGroup) {
	devices := api.Group("/Device")
	{
		devices.POST("/Create", c.Create)
		devices.GET("/GetAll/:email", c.GetAll)
		devices.GET("/GetSpecific/:id_device", c.GetSpecific)
		devices.GET("/GetDevice/:id", c.GetDevice)
		devices.POST("/UpdateValue", c.UpdateValue)
		devices.POST("/Delete", c.Delete)
	}
}

func (c *DeviceController) Create(ctx *gin.Context) {
	var req api_models.CreateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to create new device, wrong parameters", err.Error()))
		return
	}

	_, err := c.catalog.CreateDevice(ctx, req.Name, req.Status, req.Description, req.UserID)
	if err != nil {
		if errors.Is(err, catalog.ErrDeviceNameTaken) {
			respond(ctx, api_models.Failed(400, "device name is already used",
				"Cannot add new device with this name, choose another name!"))
			return
		}
		respond(ctx, api_models.Failed(400, "fail to create new device, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Created())
}

// GetAll lists the devices of the user owning the given email.
func (c *DeviceController) GetAll(ctx *gin.Context) {
	email := ctx.Param("email")

	user, err := c.userRepo.FindByEmail(ctx, email)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while getting data", []gin.H{}))
		return
	}
	if user == nil {
		respond(ctx, api_models.Failed(404, "no user is found", []gin.H{}))
		return
	}

	devices, err := c.deviceRepo.ListByUser(ctx, user.ID)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while getting data", []gin.H{}))
		return
	}
	if len(devices) == 0 {
		respond(ctx, api_models.Failed(404, "no device is found", []gin.H{}))
		return
	}

	respond(ctx, api_models.OK(devices))
}

func (c *DeviceController) GetSpecific(ctx *gin.Context) {
	c.getByID(ctx, ctx.Param("id_device"))
}

func (c *DeviceController) GetDevice(ctx *gin.Context) {
	c.getByID(ctx, ctx.Param("id"))
}

func (c *DeviceController) getByID(ctx *gin.Context, id string) {
	device, err := c.deviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(ctx, api_models.Failed(404, "no device is found", gin.H{}))
			return
		}
		respond(ctx, api_models.Failed(400, "error while fetching data", gin.H{}))
		return
	}

	respond(ctx, api_models.OK(device))
}

func (c *DeviceController) UpdateValue(ctx *gin.Context) {
	var req api_models.UpdateDeviceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update device data, wrong parameters", err.Error()))
		return
	}

	if err := c.deviceRepo.Update(ctx, req.ID, req.Name, req.Status, req.Description, auth.NowClock()); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update device data, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Updated("device data updated"))
}

// Delete removes the device and cascades to its sensor data; audit log
// entries stay behind.
func (c *DeviceController) Delete(ctx *gin.Context) {
	var req api_models.DeviceIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	if err := c.engine.DeleteDevice(ctx, req.ID); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	respond(ctx, api_models.OK("device has been deleted"))
}
