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

// UserController handles account management and session requests
type UserController struct {
	userRepo interfaces.UserRepository
	catalog  *catalog.Service
	engine   *hierarchy.Engine
	sessions *auth.SessionService
	logger   *logger.Logger
}

func NewUserController(userRepo interfaces.UserRepository, catalogService *catalog.Service, engine *hierarchy.Engine, sessions *auth.SessionService, log *logger.Logger) *UserController {
	return &UserController{
		userRepo: userRepo,
		catalog:  catalogService,
		engine:   engine,
		sessions: sessions,
		logger:   log.WithComponent("user_controller"),
	}
}

// RegisterRoutes registers the user routes with Gin
func (c *UserController) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/User")
	{
		users.POST("/Create", c.Create)
		users.GET("/GetInfo/:email", c.GetInfo)
		users.GET("/GetId/:email", c.GetID)
		users.GET("/GetUser/:id", c.GetUser)
		users.POST("/UpdateValue", c.UpdateValue)
		users.POST("/ChangePassword", c.ChangePassword)
		users.POST("/Delete", c.Delete)
		users.POST("/DeleteWithData", c.DeleteWithData)
		users.POST("/Login", c.Login)
		users.POST("/Logout", c.Logout)
		users.POST("/CheckSessionLogin", c.CheckSessionLogin)
		users.POST("/UpdateSessionLogin", c.UpdateSessionLogin)
	}
}

func (c *UserController) Create(ctx *gin.Context) {
	var req api_models.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to create new user, wrong parameters", err.Error()))
		return
	}

	_, err := c.catalog.CreateUser(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, catalog.ErrEmailTaken) {
			respond(ctx, api_models.Failed(400, "email address is already used",
				"Cannot register with this email, another user has been found!"))
			return
		}
		respond(ctx, api_models.Failed(400, "fail to create new user, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Created())
}

func (c *UserController) GetInfo(ctx *gin.Context) {
	email := ctx.Param("email")

	user, err := c.userRepo.FindByEmail(ctx, email)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while getting data", gin.H{}))
		return
	}
	if user == nil {
		respond(ctx, api_models.Failed(404, "no user is found", gin.H{}))
		return
	}

	respond(ctx, api_models.OK(user))
}

func (c *UserController) GetID(ctx *gin.Context) {
	email := ctx.Param("email")

	user, err := c.userRepo.FindByEmail(ctx, email)
	if err != nil {
		respond(ctx, api_models.Failed(400, "error while getting data", gin.H{}))
		return
	}
	if user == nil {
		respond(ctx, api_models.Failed(404, "no user is found", gin.H{}))
		return
	}

	respond(ctx, api_models.OK(gin.H{"id": user.ID}))
}

func (c *UserController) GetUser(ctx *gin.Context) {
	id := ctx.Param("id")

	user, err := c.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(ctx, api_models.Failed(404, "no user is found", gin.H{}))
			return
		}
		respond(ctx, api_models.Failed(400, "error while fetching data", gin.H{}))
		return
	}

	respond(ctx, api_models.OK(user))
}

func (c *UserController) UpdateValue(ctx *gin.Context) {
	var req api_models.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update user data, wrong parameters", err.Error()))
		return
	}

	if err := c.userRepo.UpdateProfile(ctx, req.ID, req.Name, req.Email, auth.NowClock()); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update user data, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Updated("user data updated"))
}

func (c *UserController) ChangePassword(ctx *gin.Context) {
	var req api_models.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update user data, wrong parameters", err.Error()))
		return
	}

	user, err := c.userRepo.GetByID(ctx, req.ID)
	if err != nil {
		respond(ctx, api_models.Failed(400, "failed", "failed to get previous data"))
		return
	}

	if auth.HashPassword(req.OldPassword) != user.Password {
		respond(ctx, api_models.Failed(400, "old password not match", "please try again"))
		return
	}

	if err := c.userRepo.UpdatePassword(ctx, req.ID, auth.HashPassword(req.NewPassword), auth.NowClock()); err != nil {
		respond(ctx, api_models.Failed(400, "fail to update user data, wrong parameters", err.Error()))
		return
	}

	respond(ctx, api_models.Updated("user data updated"))
}

func (c *UserController) Delete(ctx *gin.Context) {
	var req api_models.UserIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	if err := c.engine.DeleteUser(ctx, req.ID); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	respond(ctx, api_models.OK("user has been deleted"))
}

func (c *UserController) DeleteWithData(ctx *gin.Context) {
	var req api_models.UserIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	if err := c.engine.DeleteUserWithData(ctx, req.ID); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	respond(ctx, api_models.OK("user has been deleted"))
}

func (c *UserController) Login(ctx *gin.Context) {
	var req api_models.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", "Wrong parameters"))
		return
	}

	user, err := c.sessions.Login(ctx, req.Email, req.Password)
	if err != nil {
		respond(ctx, api_models.Failed(400, "failed", "Wrong parameters"))
		return
	}
	if user == nil {
		respond(ctx, api_models.Failed(400, "failed", "Incorrect email address or password"))
		return
	}

	respond(ctx, api_models.OK("ok"))
}

func (c *UserController) Logout(ctx *gin.Context) {
	var req api_models.UserIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	err := c.sessions.Logout(ctx, req.ID)
	if err != nil {
		if errors.Is(err, auth.ErrNotLoggedIn) {
			respond(ctx, api_models.Failed(400, "user hasn't logged in", "no active session"))
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			respond(ctx, api_models.Failed(404, "no user is found", gin.H{}))
			return
		}
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	respond(ctx, api_models.OK("user has been logged out"))
}

func (c *UserController) CheckSessionLogin(ctx *gin.Context) {
	var req api_models.UserIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	active, err := c.sessions.CheckSession(ctx, req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(ctx, api_models.Failed(404, "no user is found", gin.H{}))
			return
		}
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	respond(ctx, api_models.OK(gin.H{"active": active}))
}

func (c *UserController) UpdateSessionLogin(ctx *gin.Context) {
	var req api_models.UserIDRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	if err := c.sessions.Heartbeat(ctx, req.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respond(ctx, api_models.Failed(404, "no user is found", gin.H{}))
			return
		}
		respond(ctx, api_models.Failed(400, "failed", err.Error()))
		return
	}

	respond(ctx, api_models.OK("session refreshed"))
}
