package stsmodels

// Collection names match the original deployment, singular on purpose.
const (
	UserCollection   = "user"
	DeviceCollection = "device"
	DataCollection   = "data"
	LogCollection    = "log"
)
