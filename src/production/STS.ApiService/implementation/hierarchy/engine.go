package hierarchy

import (
	"context"

	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/audit"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/auth"
	interfaces "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Interfaces"
	worker "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Worker"
)

// Engine keeps the User → Device → SensorData → LogEntry hierarchy
// consistent out of independent store calls. The primary write of
// each operation is synchronous and decides the response; timestamp
// bubbling, audit appends and cascade sub-deletes are handed to the
// dispatcher and complete on their own.
type Engine struct {
	userRepo   interfaces.UserRepository
	deviceRepo interfaces.DeviceRepository
	dataRepo   interfaces.DataRepository
	auditLog   *audit.Writer
	dispatcher *worker.Dispatcher
}

func NewEngine(userRepo interfaces.UserRepository, deviceRepo interfaces.DeviceRepository, dataRepo interfaces.DataRepository, auditLog *audit.Writer, dispatcher *worker.Dispatcher) *Engine {
	return &Engine{
		userRepo:   userRepo,
		deviceRepo: deviceRepo,
		dataRepo:   dataRepo,
		auditLog:   auditLog,
		dispatcher: dispatcher,
	}
}

// UpdateValueByID writes a new sensor value, then bubbles the same
// instant into the owning device and snapshots the mutation into the
// audit log. Only the value write can fail the call.
func (e *Engine) UpdateValueByID(ctx context.Context, id string, value interface{}) error {
	now := auth.NowClock()
	if err := e.dataRepo.UpdateValue(ctx, id, value, now); err != nil {
		return err
	}

	e.dispatcher.Dispatch("device-touch", func(ctx context.Context) error {
		data, err := e.dataRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return e.deviceRepo.Touch(ctx, data.DeviceID, now)
	})
	e.auditLog.Record(id, value, now)
	return nil
}

// UpdateValueByName resolves the sensor through an equality query on
// (id_device, name), expected to match at most once. Zero matches
// still answer success while writing nothing; callers relying on a
// not-found signal must use the id form.
func (e *Engine) UpdateValueByName(ctx context.Context, deviceID, name string, value interface{}) error {
	match, err := e.dataRepo.FindByNameAndDevice(ctx, name, deviceID)
	if err != nil {
		return err
	}
	if match == nil {
		return nil
	}

	now := auth.NowClock()
	if err := e.dataRepo.UpdateValue(ctx, match.ID, value, now); err != nil {
		return err
	}

	e.dispatcher.Dispatch("device-touch", func(ctx context.Context) error {
		return e.deviceRepo.Touch(ctx, deviceID, now)
	})
	e.auditLog.Record(match.ID, value, now)
	return nil
}

// DeleteDevice removes the device document and, independently, every
// sensor slot referencing it. Audit entries for those sensors stay,
// dangling on purpose.
func (e *Engine) DeleteDevice(ctx context.Context, id string) error {
	if err := e.deviceRepo.Delete(ctx, id); err != nil {
		return err
	}

	e.dispatcher.Dispatch("device-cascade", func(ctx context.Context) error {
		return e.deleteDeviceData(ctx, id)
	})
	return nil
}

// DeleteUser removes only the user row, deliberately orphaning any
// devices and sensor data still referencing it.
func (e *Engine) DeleteUser(ctx context.Context, id string) error {
	return e.userRepo.Delete(ctx, id)
}

// DeleteUserWithData removes the whole subtree. The per-device
// deletions are fanned out to the worker; the user delete and the
// response do not wait for them, so a crash mid-cascade can leave
// survivors below a deleted user.
func (e *Engine) DeleteUserWithData(ctx context.Context, id string) error {
	if _, err := e.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	e.dispatcher.Dispatch("user-cascade", func(ctx context.Context) error {
		devices, err := e.deviceRepo.ListByUser(ctx, id)
		if err != nil {
			return err
		}
		for _, device := range devices {
			if err := e.deleteDeviceData(ctx, device.ID); err != nil {
				return err
			}
			if err := e.deviceRepo.Delete(ctx, device.ID); err != nil {
				return err
			}
		}
		return nil
	})

	return e.userRepo.Delete(ctx, id)
}

func (e *Engine) deleteDeviceData(ctx context.Context, deviceID string) error {
	items, err := e.dataRepo.ListByDevice(ctx, deviceID)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := e.dataRepo.Delete(ctx, item.ID); err != nil {
			return err
		}
	}
	return nil
}
