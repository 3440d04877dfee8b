package stsmodels

// SensorData is one named reading slot under a device. Value is an
// opaque scalar (number, text or boolean) carried through unexamined.
type SensorData struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Value      interface{} `json:"value"`
	DeviceID   string      `json:"id_device"`
	LastUpdate string      `json:"last_update"`
}
