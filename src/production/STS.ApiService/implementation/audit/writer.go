package audit

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	interfaces "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Interfaces"
	worker "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Worker"
)

// Writer appends one immutable LogEntry per sensor value mutation,
// dispatched off the request path. Append failures are retried by the
// worker and never reach the client.
type Writer struct {
	logRepo    interfaces.LogRepository
	dispatcher *worker.Dispatcher
}

func NewWriter(logRepo interfaces.LogRepository, dispatcher *worker.Dispatcher) *Writer {
	return &Writer{logRepo: logRepo, dispatcher: dispatcher}
}

// Record snapshots a value mutation. Name and description edits are
// not recorded; only value writes carry an audit entry.
func (w *Writer) Record(dataID string, value interface{}, timestamp string) {
	w.dispatcher.Dispatch("audit-append", func(ctx context.Context) error {
		_, err := w.logRepo.Append(ctx, &stsmodels.LogEntry{
			DataID:    dataID,
			Value:     value,
			Timestamp: timestamp,
		})
		return err
	})
}
