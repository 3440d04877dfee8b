package interfaces

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
)

type DeviceRepository interface {
	// Create device
	Create(ctx context.Context, device *stsmodels.Device) (string, error)

	// Read devices. FindByNameAndUser returns (nil, nil) when nothing matches.
	GetByID(ctx context.Context, id string) (*stsmodels.Device, error)
	FindByNameAndUser(ctx context.Context, name, userID string) (*stsmodels.Device, error)
	ListByUser(ctx context.Context, userID string) ([]stsmodels.Device, error)

	// Update device
	Update(ctx context.Context, id, name string, status bool, description, lastUpdate string) error
	Touch(ctx context.Context, id, lastUpdate string) error

	// Delete device
	Delete(ctx context.Context, id string) error
}
