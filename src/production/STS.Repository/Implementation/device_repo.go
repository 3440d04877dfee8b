package implementation

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

type DocDeviceRepository struct {
	store store.Store
}

func NewDocDeviceRepository(s store.Store) *DocDeviceRepository {
	return &DocDeviceRepository{store: s}
}

func deviceDoc(device *stsmodels.Device) store.Document {
	return store.Document{
		"name":        device.Name,
		"status":      device.Status,
		"description": device.Description,
		"id_user":     device.UserID,
		"last_update": device.LastUpdate,
	}
}

func deviceFromDoc(id string, doc store.Document) *stsmodels.Device {
	return &stsmodels.Device{
		ID:          id,
		Name:        asString(doc["name"]),
		Status:      asBool(doc["status"]),
		Description: asString(doc["description"]),
		UserID:      asString(doc["id_user"]),
		LastUpdate:  asString(doc["last_update"]),
	}
}

// Create device
func (r *DocDeviceRepository) Create(ctx context.Context, device *stsmodels.Device) (string, error) {
	id, err := r.store.Insert(ctx, stsmodels.DeviceCollection, deviceDoc(device))
	if err != nil {
		return "", err
	}
	device.ID = id
	return id, nil
}

// Read devices
func (r *DocDeviceRepository) GetByID(ctx context.Context, id string) (*stsmodels.Device, error) {
	doc, err := r.store.GetByID(ctx, stsmodels.DeviceCollection, id)
	if err != nil {
		return nil, err
	}
	return deviceFromDoc(id, doc), nil
}

func (r *DocDeviceRepository) FindByNameAndUser(ctx context.Context, name, userID string) (*stsmodels.Device, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.DeviceCollection, store.Document{
		"name":    name,
		"id_user": userID,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return deviceFromDoc(results[0].ID, results[0].Doc), nil
}

func (r *DocDeviceRepository) ListByUser(ctx context.Context, userID string) ([]stsmodels.Device, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.DeviceCollection, store.Document{"id_user": userID})
	if err != nil {
		return nil, err
	}

	devices := make([]stsmodels.Device, 0, len(results))
	for _, res := range results {
		devices = append(devices, *deviceFromDoc(res.ID, res.Doc))
	}
	return devices, nil
}

// Update device
func (r *DocDeviceRepository) Update(ctx context.Context, id, name string, status bool, description, lastUpdate string) error {
	return r.store.UpdateByID(ctx, stsmodels.DeviceCollection, id, store.Document{
		"name":        name,
		"status":      status,
		"description": description,
		"last_update": lastUpdate,
	})
}

// Touch refreshes only the device timestamp; the value-update path
// bubbles its instant up through here.
func (r *DocDeviceRepository) Touch(ctx context.Context, id, lastUpdate string) error {
	return r.store.UpdateByID(ctx, stsmodels.DeviceCollection, id, store.Document{
		"last_update": lastUpdate,
	})
}

// Delete device
func (r *DocDeviceRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, stsmodels.DeviceCollection, id)
}
