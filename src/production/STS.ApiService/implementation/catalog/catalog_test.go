package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/stratosense1/sts.iot_server/src/production/STS.ApiService/implementation/auth"
	implementation "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Repository/Implementation"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

func newTestService() (*Service, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	svc := NewService(
		implementation.NewDocUserRepository(mem),
		implementation.NewDocDeviceRepository(mem),
		implementation.NewDocDataRepository(mem),
	)
	return svc, mem
}

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "imposter", "alice@example.com", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestCreateUserStoresHashedPassword(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "alice@example.com", "secret123")
	require.NoError(t, err)

	userRepo := implementation.NewDocUserRepository(mem)
	user, err := userRepo.FindByCredentials(ctx, "alice@example.com", auth.HashPassword("secret123"))
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotEqual(t, "secret123", user.Password)
	require.NotEmpty(t, user.LastUpdate)
}

func TestCreateDeviceNameUniquePerUser(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateDevice(ctx, "greenhouse", true, "", "user-1")
	require.NoError(t, err)

	_, err = svc.CreateDevice(ctx, "greenhouse", false, "second", "user-1")
	require.ErrorIs(t, err, ErrDeviceNameTaken)

	// The same name under another user is fine.
	_, err = svc.CreateDevice(ctx, "greenhouse", true, "", "user-2")
	require.NoError(t, err)
}

func TestCreateDataNameUniquePerDevice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.CreateData(ctx, "temperature", 21.5, "device-1")
	require.NoError(t, err)

	_, err = svc.CreateData(ctx, "temperature", 22.0, "device-1")
	require.ErrorIs(t, err, ErrDataNameTaken)

	_, err = svc.CreateData(ctx, "temperature", 18.0, "device-2")
	require.NoError(t, err)
}

func TestCreateDataKeepsValueOpaque(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	cases := []struct {
		name  string
		value interface{}
	}{
		{"humidity", 42.0},
		{"mode", "on"},
		{"armed", true},
		{"blank", nil},
	}
	for _, c := range cases {
		_, err := svc.CreateData(ctx, c.name, c.value, "device-1")
		require.NoError(t, err, "value %v", c.value)
	}
}
