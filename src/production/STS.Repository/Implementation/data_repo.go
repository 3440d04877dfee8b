package implementation

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

type DocDataRepository struct {
	store store.Store
}

func NewDocDataRepository(s store.Store) *DocDataRepository {
	return &DocDataRepository{store: s}
}

func dataDoc(data *stsmodels.SensorData) store.Document {
	return store.Document{
		"name":        data.Name,
		"value":       data.Value,
		"id_device":   data.DeviceID,
		"last_update": data.LastUpdate,
	}
}

func dataFromDoc(id string, doc store.Document) *stsmodels.SensorData {
	return &stsmodels.SensorData{
		ID:         id,
		Name:       asString(doc["name"]),
		Value:      doc["value"],
		DeviceID:   asString(doc["id_device"]),
		LastUpdate: asString(doc["last_update"]),
	}
}

// Create sensor data
func (r *DocDataRepository) Create(ctx context.Context, data *stsmodels.SensorData) (string, error) {
	id, err := r.store.Insert(ctx, stsmodels.DataCollection, dataDoc(data))
	if err != nil {
		return "", err
	}
	data.ID = id
	return id, nil
}

// Read sensor data
func (r *DocDataRepository) GetByID(ctx context.Context, id string) (*stsmodels.SensorData, error) {
	doc, err := r.store.GetByID(ctx, stsmodels.DataCollection, id)
	if err != nil {
		return nil, err
	}
	return dataFromDoc(id, doc), nil
}

func (r *DocDataRepository) FindByNameAndDevice(ctx context.Context, name, deviceID string) (*stsmodels.SensorData, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.DataCollection, store.Document{
		"name":      name,
		"id_device": deviceID,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return dataFromDoc(results[0].ID, results[0].Doc), nil
}

func (r *DocDataRepository) ListByDevice(ctx context.Context, deviceID string) ([]stsmodels.SensorData, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.DataCollection, store.Document{"id_device": deviceID})
	if err != nil {
		return nil, err
	}

	items := make([]stsmodels.SensorData, 0, len(results))
	for _, res := range results {
		items = append(items, *dataFromDoc(res.ID, res.Doc))
	}
	return items, nil
}

// Update sensor data
func (r *DocDataRepository) UpdateValue(ctx context.Context, id string, value interface{}, lastUpdate string) error {
	return r.store.UpdateByID(ctx, stsmodels.DataCollection, id, store.Document{
		"value":       value,
		"last_update": lastUpdate,
	})
}

func (r *DocDataRepository) UpdateName(ctx context.Context, id, name, lastUpdate string) error {
	return r.store.UpdateByID(ctx, stsmodels.DataCollection, id, store.Document{
		"name":        name,
		"last_update": lastUpdate,
	})
}

// Delete sensor data
func (r *DocDataRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, stsmodels.DataCollection, id)
}
