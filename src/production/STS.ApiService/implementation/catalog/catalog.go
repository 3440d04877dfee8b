package catalog

import (
	"context"
	"errors"

	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/auth"
	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	interfaces "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Interfaces"
)

// Duplicate-key sentinels surfaced to the controllers as conflict
// envelopes.
var (
	ErrEmailTaken      = errors.New("email address is already used")
	ErrDeviceNameTaken = errors.New("device name is already used")
	ErrDataNameTaken   = errors.New("data name is already used")
)

// Service creates entities behind a query-then-insert uniqueness
// guard. The check and the insert are two independent store calls
// with no lock between them: concurrent creates of the same key can
// both pass the check and both land. That window is accepted; the
// store offers no conditional insert on arbitrary fields.
type Service struct {
	userRepo   interfaces.UserRepository
	deviceRepo interfaces.DeviceRepository
	dataRepo   interfaces.DataRepository
}

func NewService(userRepo interfaces.UserRepository, deviceRepo interfaces.DeviceRepository, dataRepo interfaces.DataRepository) *Service {
	return &Service{userRepo: userRepo, deviceRepo: deviceRepo, dataRepo: dataRepo}
}

// CreateUser registers an account. Email must be unique across all
// users.
func (s *Service) CreateUser(ctx context.Context, name, email, password string) (string, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrEmailTaken
	}

	user := &stsmodels.User{
		Name:       name,
		Email:      email,
		Password:   auth.HashPassword(password),
		LastUpdate: auth.NowClock(),
	}
	return s.userRepo.Create(ctx, user)
}

// CreateDevice registers a device. Name must be unique within its
// owning user.
func (s *Service) CreateDevice(ctx context.Context, name string, status bool, description, userID string) (string, error) {
	existing, err := s.deviceRepo.FindByNameAndUser(ctx, name, userID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrDeviceNameTaken
	}

	device := &stsmodels.Device{
		Name:        name,
		Status:      status,
		Description: description,
		UserID:      userID,
		LastUpdate:  auth.NowClock(),
	}
	return s.deviceRepo.Create(ctx, device)
}

// CreateData registers a sensor reading slot. Name must be unique
// within its owning device.
func (s *Service) CreateData(ctx context.Context, name string, value interface{}, deviceID string) (string, error) {
	existing, err := s.dataRepo.FindByNameAndDevice(ctx, name, deviceID)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrDataNameTaken
	}

	data := &stsmodels.SensorData{
		Name:       name,
		Value:      value,
		DeviceID:   deviceID,
		LastUpdate: auth.NowClock(),
	}
	return s.dataRepo.Create(ctx, data)
}
