package implementation

import (
	"context"

	stsmodels "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Models"
	store "gitlab.com/stratosense1/sts.iot_server/src/production/STS.Store"
)

type DocUserRepository struct {
	store store.Store
}

func NewDocUserRepository(s store.Store) *DocUserRepository {
	return &DocUserRepository{store: s}
}

func userDoc(user *stsmodels.User) store.Document {
	return store.Document{
		"name":        user.Name,
		"email":       user.Email,
		"password":    user.Password,
		"last_update": user.LastUpdate,
		"last_login":  user.LastLogin,
	}
}

func userFromDoc(id string, doc store.Document) *stsmodels.User {
	return &stsmodels.User{
		ID:         id,
		Name:       asString(doc["name"]),
		Email:      asString(doc["email"]),
		Password:   asString(doc["password"]),
		LastUpdate: asString(doc["last_update"]),
		LastLogin:  asString(doc["last_login"]),
	}
}

// Create user
func (r *DocUserRepository) Create(ctx context.Context, user *stsmodels.User) (string, error) {
	id, err := r.store.Insert(ctx, stsmodels.UserCollection, userDoc(user))
	if err != nil {
		return "", err
	}
	user.ID = id
	return id, nil
}

// Read users
func (r *DocUserRepository) GetByID(ctx context.Context, id string) (*stsmodels.User, error) {
	doc, err := r.store.GetByID(ctx, stsmodels.UserCollection, id)
	if err != nil {
		return nil, err
	}
	return userFromDoc(id, doc), nil
}

func (r *DocUserRepository) FindByEmail(ctx context.Context, email string) (*stsmodels.User, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.UserCollection, store.Document{"email": email})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return userFromDoc(results[0].ID, results[0].Doc), nil
}

// FindByCredentials resolves a login with a single equality query on
// (email, password hash), the way the original did. Not a
// constant-time compare; known hardening opportunity.
func (r *DocUserRepository) FindByCredentials(ctx context.Context, email, passwordHash string) (*stsmodels.User, error) {
	results, err := r.store.QueryEquals(ctx, stsmodels.UserCollection, store.Document{
		"email":    email,
		"password": passwordHash,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return userFromDoc(results[0].ID, results[0].Doc), nil
}

// Update user
func (r *DocUserRepository) UpdateProfile(ctx context.Context, id, name, email, lastUpdate string) error {
	return r.store.UpdateByID(ctx, stsmodels.UserCollection, id, store.Document{
		"name":        name,
		"email":       email,
		"last_update": lastUpdate,
	})
}

func (r *DocUserRepository) UpdatePassword(ctx context.Context, id, passwordHash, lastUpdate string) error {
	return r.store.UpdateByID(ctx, stsmodels.UserCollection, id, store.Document{
		"password":    passwordHash,
		"last_update": lastUpdate,
	})
}

func (r *DocUserRepository) SetLastLogin(ctx context.Context, id, lastLogin string) error {
	return r.store.UpdateByID(ctx, stsmodels.UserCollection, id, store.Document{
		"last_login": lastLogin,
	})
}

// Delete user
func (r *DocUserRepository) Delete(ctx context.Context, id string) error {
	return r.store.DeleteByID(ctx, stsmodels.UserCollection, id)
}
