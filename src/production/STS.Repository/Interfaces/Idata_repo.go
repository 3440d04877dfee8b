package interfaces

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
)

type DataRepository interface {
	// Create sensor data
	Create(ctx context.Context, data *stsmodels.SensorData) (string, error)

	// Read sensor data. FindByNameAndDevice returns (nil, nil) when nothing matches.
	GetByID(ctx context.Context, id string) (*stsmodels.SensorData, error)
	FindByNameAndDevice(ctx context.Context, name, deviceID string) (*stsmodels.SensorData, error)
	ListByDevice(ctx context.Context, deviceID string) ([]stsmodels.SensorData, error)

	// Update sensor data
	UpdateValue(ctx context.Context, id string, value interface{}, lastUpdate string) error
	UpdateName(ctx context.Context, id, name, lastUpdate string) error

	// Delete sensor data
	Delete(ctx context.Context, id string) error
}
