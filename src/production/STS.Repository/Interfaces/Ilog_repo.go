package interfaces

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
)

// LogRepository is append-only: entries are never updated or deleted,
// even after their sensor is gone.
type LogRepository interface {
	Append(ctx context.Context, entry *stsmodels.LogEntry) (string, error)
	ListByData(ctx context.Context, dataID string) ([]stsmodels.LogEntry, error)
}
