package stsmodels

// User represents an account owning devices. Password holds the md5
// hex digest, never the clear text. LastLogin is the zero-padded UTC
// clock string of the last successful login; empty means logged out.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"-"`
	LastUpdate string `json:"last_update"`
	LastLogin  string `json:"-"`
}
