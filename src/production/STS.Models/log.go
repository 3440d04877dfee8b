package stsmodels

// LogEntry is an immutable audit record of one sensor value mutation.
// Entries outlive their sensor: cascade deletes never touch the log
// collection, so DataID may dangle.
type LogEntry struct {
	ID        string      `json:"id"`
	DataID    string      `json:"id_data"`
	Value     interface{} `json:"value"`
	Timestamp string      `json:"timestamp"`
}
