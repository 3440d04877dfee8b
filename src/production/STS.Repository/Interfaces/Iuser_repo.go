package interfaces

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
)

type UserRepository interface {
	// Create user
	Create(ctx context.Context, user *stsmodels.User) (string, error)

	// Read users. Find* return (nil, nil) when nothing matches.
	GetByID(ctx context.Context, id string) (*stsmodels.User, error)
	FindByEmail(ctx context.Context, email string) (*stsmodels.User, error)
	FindByCredentials(ctx context.Context, email, passwordHash string) (*stsmodels.User, error)

	// Update user
	UpdateProfile(ctx context.Context, id, name, email, lastUpdate string) error
	UpdatePassword(ctx context.Context, id, passwordHash, lastUpdate string) error
	SetLastLogin(ctx context.Context, id, lastLogin string) error

	// Delete user
	Delete(ctx context.Context, id string) error
}
