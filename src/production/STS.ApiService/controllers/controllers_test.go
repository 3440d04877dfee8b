package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/audit"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/auth"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/catalog"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/hierarchy"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	api_models "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models/api"
	implementation "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Implementation"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
	worker "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Worker"
)

// testEnv wires the full controller stack over a MemoryStore. Tests
// drive it through HTTP and reach into the repositories for seeding
// and for asserting on async effects after drain().
type testEnv struct {
	router     *gin.Engine
	dispatcher *worker.Dispatcher
	userRepo   *implementation.DocUserRepository
	deviceRepo *implementation.DocDeviceRepository
	dataRepo   *implementation.DocDataRepository
	logRepo    *implementation.DocLogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	nop := zerolog.Nop()
	log := &logger.Logger{Logger: &nop}

	mem := store.NewMemoryStore()
	userRepo := implementation.NewDocUserRepository(mem)
	deviceRepo := implementation.NewDocDeviceRepository(mem)
	dataRepo := implementation.NewDocDataRepository(mem)
	logRepo := implementation.NewDocLogRepository(mem)

	dispatcher := worker.NewDispatcher(log, 2, 16, 1, 0)
	dispatcher.Start()
	t.Cleanup(dispatcher.Stop)

	auditWriter := audit.NewWriter(logRepo, dispatcher)
	catalogService := catalog.NewService(userRepo, deviceRepo, dataRepo)
	engine := hierarchy.NewEngine(userRepo, deviceRepo, dataRepo, auditWriter, dispatcher)
	sessions := auth.NewSessionService(userRepo, time.Hour)

	router := gin.New()
	api := router.Group("/api/v1")
	NewUserController(userRepo, catalogService, engine, sessions, log).RegisterRoutes(api)
	NewDeviceController(deviceRepo, userRepo, catalogService, engine, log).RegisterRoutes(api)
	NewDataController(dataRepo, catalogService, engine, log).RegisterRoutes(api)
	NewLogController(logRepo, log).RegisterRoutes(api)

	return &testEnv{
		router:     router,
		dispatcher: dispatcher,
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		dataRepo:   dataRepo,
		logRepo:    logRepo,
	}
}

// drain waits for dispatched background tasks to finish. Stop is
// idempotent, so the cleanup hook calling it again is harmless.
func (e *testEnv) drain() {
	e.dispatcher.Stop()
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (int, api_models.Envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env api_models.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec.Code, env
}

func (e *testEnv) get(t *testing.T, path string) (int, api_models.Envelope) {
	return e.do(t, http.MethodGet, path, nil)
}

func (e *testEnv) post(t *testing.T, path string, body interface{}) (int, api_models.Envelope) {
	return e.do(t, http.MethodPost, path, body)
}

// seedTree inserts one user, one device and one sensor directly
// through the repositories and returns their ids.
func (e *testEnv) seedTree(t *testing.T) (userID, deviceID, dataID string) {
	t.Helper()
	ctx := context.Background()

	userID, err := e.userRepo.Create(ctx, &stsmodels.User{
		Name: "alice", Email: "alice@example.com", Password: auth.HashPassword("secret123"),
		LastUpdate: auth.NowClock(),
	})
	require.NoError(t, err)

	deviceID, err = e.deviceRepo.Create(ctx, &stsmodels.Device{
		Name: "greenhouse", Status: true, UserID: userID, LastUpdate: auth.NowClock(),
	})
	require.NoError(t, err)

	dataID, err = e.dataRepo.Create(ctx, &stsmodels.SensorData{
		Name: "temperature", Value: 20.0, DeviceID: deviceID, LastUpdate: auth.NowClock(),
	})
	require.NoError(t, err)

	return userID, deviceID, dataID
}

// resultField digs a key out of an envelope result object.
func resultField(t *testing.T, env api_models.Envelope, key string) interface{} {
	t.Helper()
	obj, ok := env.Result.(map[string]interface{})
	require.True(t, ok, "result is %T, not an object", env.Result)
	return obj[key]
}
