package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/controllers"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/audit"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/auth"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/catalog"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/hierarchy"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/middleware"
	container "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Container"
	ingestor "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Ingestor"
	implementation "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Implementation"
	worker "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Worker"
)

func main() {
	// Initialize dependency injection container
	ctr, err := container.NewContainer()
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize container: %v", err))
	}
	defer ctr.Shutdown(context.Background())

	logger := ctr.GetLogger()
	logger.Info("Starting API Service")

	// Connect the document store
	if err := ctr.ConnectStore(); err != nil {
		logger.FatalWithError(err, "Failed to connect document store")
	}

	docStore, err := ctr.GetStore()
	if err != nil {
		logger.FatalWithError(err, "Failed to get store handle")
	}

	// Create repositories
	userRepo := implementation.NewDocUserRepository(docStore)
	deviceRepo := implementation.NewDocDeviceRepository(docStore)
	dataRepo := implementation.NewDocDataRepository(docStore)
	logRepo := implementation.NewDocLogRepository(docStore)

	// Get configuration
	config := ctr.GetConfig()

	// Background dispatcher for fire-and-forget effects
	dispatcher := worker.NewDispatcher(logger, 4, 1024, 3, time.Second)
	dispatcher.Start()
	defer dispatcher.Stop()

	// Services
	auditWriter := audit.NewWriter(logRepo, dispatcher)
	catalogService := catalog.NewService(userRepo, deviceRepo, dataRepo)
	engine := hierarchy.NewEngine(userRepo, deviceRepo, dataRepo, auditWriter, dispatcher)
	sessions := auth.NewSessionService(userRepo, config.Session.Timeout)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	// Configure CORS from config
	corsConfig := cors.Config{
		AllowOrigins:     config.CORS.AllowedOrigins,
		AllowMethods:     config.CORS.AllowedMethods,
		AllowHeaders:     config.CORS.AllowedHeaders,
		ExposeHeaders:    config.CORS.ExposedHeaders,
		AllowCredentials: config.CORS.AllowCredentials,
		MaxAge:           time.Duration(config.CORS.MaxAge) * time.Second,
	}
	router.Use(cors.New(corsConfig))

	// Create controllers and register routes
	api := router.Group("/api/v1")
	controllers.NewUserController(userRepo, catalogService, engine, sessions, logger).RegisterRoutes(api)
	controllers.NewDeviceController(deviceRepo, userRepo, catalogService, engine, logger).RegisterRoutes(api)
	controllers.NewDataController(dataRepo, catalogService, engine, logger).RegisterRoutes(api)
	controllers.NewLogController(logRepo, logger).RegisterRoutes(api)
	controllers.NewHealthController(ctr, logger).RegisterRoutes(router)

	// Optional MQTT bridge
	if config.MQTT.Enabled {
		bridge := ingestor.New(config, engine, logger)
		if err := bridge.Start(); err != nil {
			logger.FatalWithError(err, "Failed to start MQTT bridge")
		}
		defer bridge.Stop()
	}

	// Create HTTP server with timeouts
	port := config.Server.Port
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  config.Server.ReadTimeout,
		WriteTimeout: config.Server.WriteTimeout,
		IdleTimeout:  config.Server.IdleTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		logger.Info("HTTP server starting on port " + port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.FatalWithError(err, "Failed to start HTTP server")
		}
	}()

	logger.Info("API service running... press Ctrl+C to stop")

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down...")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.ErrorWithError(err, "Server forced to shutdown")
	}
}
