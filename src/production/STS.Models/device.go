package stsmodels

// Device represents a piece of hardware owned by a user. UserID is a
// back-reference only; the store has no foreign keys.
type Device struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      bool   `json:"status"`
	Description string `json:"description"`
	UserID      string `json:"id_user"`
	LastUpdate  string `json:"last_update"`
}
