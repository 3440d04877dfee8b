package hierarchy

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/audit"
	logger "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Logger"
	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	implementation "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Implementation"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
	worker "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Worker"
)

// fixture wires the engine over a MemoryStore with a real dispatcher.
// Tests call drain() to wait for the fire-and-forget effects before
// asserting on them.
type fixture struct {
	engine     *Engine
	dispatcher *worker.Dispatcher
	userRepo   *implementation.DocUserRepository
	deviceRepo *implementation.DocDeviceRepository
	dataRepo   *implementation.DocDataRepository
	logRepo    *implementation.DocLogRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	nop := zerolog.Nop()
	log := &logger.Logger{Logger: &nop}

	mem := store.NewMemoryStore()
	userRepo := implementation.NewDocUserRepository(mem)
	deviceRepo := implementation.NewDocDeviceRepository(mem)
	dataRepo := implementation.NewDocDataRepository(mem)
	logRepo := implementation.NewDocLogRepository(mem)

	dispatcher := worker.NewDispatcher(log, 2, 16, 1, 0)
	dispatcher.Start()

	auditLog := audit.NewWriter(logRepo, dispatcher)
	return &fixture{
		engine:     NewEngine(userRepo, deviceRepo, dataRepo, auditLog, dispatcher),
		dispatcher: dispatcher,
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		dataRepo:   dataRepo,
		logRepo:    logRepo,
	}
}

func (f *fixture) drain() {
	f.dispatcher.Stop()
}

func (f *fixture) seedTree(t *testing.T) (userID, deviceID, dataID string) {
	t.Helper()
	ctx := context.Background()

	userID, err := f.userRepo.Create(ctx, &stsmodels.User{Name: "alice", Email: "a@b.c"})
	require.NoError(t, err)

	deviceID, err = f.deviceRepo.Create(ctx, &stsmodels.Device{
		Name: "greenhouse", Status: true, UserID: userID, LastUpdate: "2024-01-01 00:00:00",
	})
	require.NoError(t, err)

	dataID, err = f.dataRepo.Create(ctx, &stsmodels.SensorData{
		Name: "temperature", Value: 20.0, DeviceID: deviceID, LastUpdate: "2024-01-01 00:00:00",
	})
	require.NoError(t, err)

	return userID, deviceID, dataID
}

func TestUpdateValueByIDBubblesTimestamp(t *testing.T) {
	f := newFixture(t)
	_, deviceID, dataID := f.seedTree(t)
	ctx := context.Background()

	require.NoError(t, f.engine.UpdateValueByID(ctx, dataID, 23.5))
	f.drain()

	data, err := f.dataRepo.GetByID(ctx, dataID)
	require.NoError(t, err)
	require.Equal(t, 23.5, data.Value)
	require.NotEqual(t, "2024-01-01 00:00:00", data.LastUpdate)

	// The device carries the exact same stamp as the sensor.
	device, err := f.deviceRepo.GetByID(ctx, deviceID)
	require.NoError(t, err)
	require.Equal(t, data.LastUpdate, device.LastUpdate)

	// The device row is otherwise untouched.
	require.Equal(t, "greenhouse", device.Name)
	require.True(t, device.Status)
}

func TestUpdateValueByIDAppendsOneLogEntry(t *testing.T) {
	f := newFixture(t)
	_, _, dataID := f.seedTree(t)
	ctx := context.Background()

	require.NoError(t, f.engine.UpdateValueByID(ctx, dataID, 23.5))
	f.drain()

	entries, err := f.logRepo.ListByData(ctx, dataID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, 23.5, entries[0].Value)

	data, err := f.dataRepo.GetByID(ctx, dataID)
	require.NoError(t, err)
	require.Equal(t, data.LastUpdate, entries[0].Timestamp)
}

func TestUpdateValueByIDUnknownSensor(t *testing.T) {
	f := newFixture(t)
	defer f.drain()

	err := f.engine.UpdateValueByID(context.Background(), "missing", 1.0)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateValueByNameMissAnswersSuccess(t *testing.T) {
	f := newFixture(t)
	_, deviceID, dataID := f.seedTree(t)
	ctx := context.Background()

	// No sensor called "pressure" exists: the call succeeds and
	// writes nothing at all.
	require.NoError(t, f.engine.UpdateValueByName(ctx, deviceID, "pressure", 1013.0))
	f.drain()

	data, err := f.dataRepo.GetByID(ctx, dataID)
	require.NoError(t, err)
	require.Equal(t, 20.0, data.Value)

	entries, err := f.logRepo.ListByData(ctx, dataID)
	require.NoError(t, err)
	require.Empty(t, entries)

	device, err := f.deviceRepo.GetByID(ctx, deviceID)
	require.NoError(t, err)
	require.Equal(t, "2024-01-01 00:00:00", device.LastUpdate)
}

func TestUpdateValueByNameHit(t *testing.T) {
	f := newFixture(t)
	_, deviceID, dataID := f.seedTree(t)
	ctx := context.Background()

	require.NoError(t, f.engine.UpdateValueByName(ctx, deviceID, "temperature", 25.0))
	f.drain()

	data, err := f.dataRepo.GetByID(ctx, dataID)
	require.NoError(t, err)
	require.Equal(t, 25.0, data.Value)

	device, err := f.deviceRepo.GetByID(ctx, deviceID)
	require.NoError(t, err)
	require.Equal(t, data.LastUpdate, device.LastUpdate)

	entries, err := f.logRepo.ListByData(ctx, dataID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDeleteDeviceCascadesDataKeepsLogs(t *testing.T) {
	f := newFixture(t)
	_, deviceID, dataID := f.seedTree(t)
	ctx := context.Background()

	// Leave an audit entry behind before deleting.
	require.NoError(t, f.engine.UpdateValueByID(ctx, dataID, 21.0))
	require.NoError(t, f.engine.DeleteDevice(ctx, deviceID))
	f.drain()

	_, err := f.deviceRepo.GetByID(ctx, deviceID)
	require.ErrorIs(t, err, store.ErrNotFound)

	_, err = f.dataRepo.GetByID(ctx, dataID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Audit entries survive their sensor.
	entries, err := f.logRepo.ListByData(ctx, dataID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestDeleteUserLeavesSubtree(t *testing.T) {
	f := newFixture(t)
	userID, deviceID, dataID := f.seedTree(t)
	ctx := context.Background()

	require.NoError(t, f.engine.DeleteUser(ctx, userID))
	f.drain()

	_, err := f.userRepo.GetByID(ctx, userID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// Devices and sensors are deliberately orphaned.
	_, err = f.deviceRepo.GetByID(ctx, deviceID)
	require.NoError(t, err)
	_, err = f.dataRepo.GetByID(ctx, dataID)
	require.NoError(t, err)
}

func TestDeleteUserWithDataRemovesSubtree(t *testing.T) {
	f := newFixture(t)
	userID, deviceID, dataID := f.seedTree(t)
	ctx := context.Background()

	// A second device with its own sensor, to exercise the fan-out.
	deviceID2, err := f.deviceRepo.Create(ctx, &stsmodels.Device{Name: "barn", UserID: userID})
	require.NoError(t, err)
	dataID2, err := f.dataRepo.Create(ctx, &stsmodels.SensorData{Name: "humidity", DeviceID: deviceID2})
	require.NoError(t, err)

	require.NoError(t, f.engine.DeleteUserWithData(ctx, userID))
	f.drain()

	for _, id := range []string{deviceID, deviceID2} {
		_, err := f.deviceRepo.GetByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	}
	for _, id := range []string{dataID, dataID2} {
		_, err := f.dataRepo.GetByID(ctx, id)
		require.ErrorIs(t, err, store.ErrNotFound)
	}
	_, err = f.userRepo.GetByID(ctx, userID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteUserWithDataUnknownUser(t *testing.T) {
	f := newFixture(t)
	defer f.drain()

	err := f.engine.DeleteUserWithData(context.Background(), "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}
