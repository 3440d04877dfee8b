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

// DataController handles sensor data requests
type DataController struct {
	dataRepo interfaces.DataRepository
	catalog  *catalog.Service
	engine   *hierarchy.Engine
	logger   *logger.Logger
}

func NewDataController(dataRepo interfaces.DataRepository, catalogService *catalog.Service, engine *hierarchy.Engine, log *logger.Logger) *DataController {
	return &DataController{
		dataRepo: dataRepo,
		catalog:  catalogService,
		engine:   engine,
		logger:   log.WithComponent("data_controller"),
	}
}

// RegisterRoutes registers the data routes with Gin
func (c *DataController) RegisterRoutes(api *gin.RouterGroup) {
	data := api.Group("/Data")
	{
		data.POST("/Create", c.Create)
		data.GET("/GetAll/:id_device", c.GetAll)
		data.GET("/GetSpecific/:id_device/UseName/:name", c.GetSpecific)
		data.GET("/GetData/:id", c.GetData)
		data.POST("/UpdateValue", c.UpdateValue)
		data.POST("/UpdateName", c.UpdateName)
	}
}

func (c *DataController) Create(ctx *gin.Context) {
	var req api_models.CreateDataRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to create new data, wrong parameters", err.Error()))
		return
	}

	_, err := c.catalog.CreateData(ctx, req.Name, req.Value, req.DeviceID)
	if err != nil {
		if errors.Is(err, catalog.ErrDataNameTaken) {
			respond(ctx, api_models.Failed(400, "data name is already used",
				"Cannot add new data with this name, choose another name!"))
			return
		}
		respond(ctx, api_models.Failed(400, "fail to create new data, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Created())
}

func (c *DataController) GetAll(ctx *gin.Context) {
	deviceID := ctx.Param("id_device")

	items, err := c.dataRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while fetching data", []gin.H{}))
		return
	}
	if len(items) == 0 {
		respond(ctx, api_models.Failed(404, "no data is found", []gin.H{}))
		return
	}

	respond(ctx, api_models.OK(items))
}

func (c *DataController) GetSpecific(ctx *gin.Context) {
	deviceID := ctx.Param("id_device")
	name := ctx.Param("name")

	data, err := c.dataRepo.FindByNameAndDevice(ctx, name, deviceID)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while fetching data", gin.H{}))
		return
	}
	if data == nil {
		respond(ctx, api_models.Failed(404, "no data is found", gin.H{}))
		return
	}

	respond(ctx, api_models.OK(data))
}

func (c *DataController) GetData(ctx *gin.Context) {
	id := ctx.Param("id")

	data, err := c.dataRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(ctx, api_models.Failed(404, "no data is found", gin.H{}))
			return
		}
		respond(ctx, api_models.Failed(400, "error while fetching data", gin.H{}))
		return
	}

	respond(ctx, api_models.OK(data))
}

// UpdateValue resolves the sensor by id when one is supplied, else by
// the (id_device, name) pair. The name form answers success even when
// nothing matched; only the id form can report a miss.
func (c *DataController) UpdateValue(ctx *gin.Context) {
	var req api_models.UpdateDataValueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update data, wrong parameters", err.Error()))
		return
	}

	if req.ID != "" {
		if err := c.engine.UpdateValueByID(ctx, req.ID, req.Value); err != nil {
			respond(ctx, api_models.Failed(400, "fail to update data, wrong parameters", err.Error()))
			return
		}
		respond(ctx, api_models.Updated("data value updated"))
		return
	}

	if req.Name == "" || req.DeviceID == "" {
		respond(ctx, api_models.Failed(400, "fail to update data, wrong parameters",
			"name and id_device are required when no id is given"))
		return
	}

	if err := c.engine.UpdateValueByName(ctx, req.DeviceID, req.Name, req.Value); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update data, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Updated("data value updated"))
}

func (c *DataController) UpdateName(ctx *gin.Context) {
	var req api_models.UpdateDataNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update data name, wrong parameters", err.Error()))
		return
	}

	if err := c.dataRepo.UpdateName(ctx, req.ID, req.Name, auth.NowClock()); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update data name, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Updated("data name updated"))
}
