package api_models

// User requests

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	ID    string `json:"id" binding:"required"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required"`
}

type ChangePasswordRequest struct {
	ID          string `json:"id" binding:"required"`
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type UserIDRequest struct {
	ID string `json:"id" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Device requests

type CreateDeviceRequest struct {
	Name        string `json:"name" binding:"required"`
	Status      bool   `json:"status"`
	Description string `json:"description"`
	UserID      string `json:"id_user" binding:"required"`
}

type UpdateDeviceRequest struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Status      bool   `json:"status"`
	Description string `json:"description"`
}

type DeviceIDRequest struct {
	ID string `json:"id" binding:"required"`
}

// Data requests

type CreateDataRequest struct {
	Name     string      `json:"name" binding:"required"`
	Value    interface{} `json:"value"`
	DeviceID string      `json:"id_device" binding:"required"`
}

// UpdateDataValueRequest resolves the target by ID when it is present,
// otherwise by the (DeviceID, Name) pair.
type UpdateDataValueRequest struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Value    interface{} `json:"value"`
	DeviceID string      `json:"id_device"`
}

type UpdateDataNameRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
}
