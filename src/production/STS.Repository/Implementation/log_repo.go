package implementation

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

type DocLogRepository struct {
	store store.Store
}

func NewDocLogRepository(s store.Store) *DocLogRepository {
	return &DocLogRepository{store: s}
}

func (r *DocLogRepository) Append(ctx context.Context, entry *stsmodels.LogEntry) (string, error) {
	id, err := r.store.Insert(ctx, stsmodels.LogCollection, store.Document{
		"id_data":   entry.DataID,
		"value":     entry.Value,
		"timestamp": entry.Timestamp,
	})
	if err != nil {
		return "", err
	}
	entry.ID = id
	return id, nil
}

func (r *DocLogRepository) ListByData(ctx context.Context, dataID string) ([]stsmodels.LogEntry, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.LogCollection, store.Document{"id_data": dataID})
	if err != nil {
		return nil, err
	}

	entries := make([]stsmodels.LogEntry, 0, len(results))
	for _, res := range results {
		entries = append(entries, stsmodels.LogEntry{
			ID:        res.ID,
			DataID:    asString(res.Doc["id_data"]),
			Value:     res.Doc["value"],
			Timestamp: asString(res.Doc["timestamp"]),
		})
	}
	return entries, nil
}
