// Package domain contains the core business entities for cinelog.
package domain

import (
	"time"
)

// User represents a registered account.
// Users own movie entries and authenticate with username and password.
//
// Passwords are stored and compared verbatim. This mirrors the behavior
// of the system being replaced and exists only for behavioral fidelity;
// it must not be reused outside this service.
type User struct {
	// Username is the unique account name. Matching is exact
	// (case-sensitive) everywhere.
	Username string `json:"username"`

	// Password is the plaintext password.
	Password string `json:"password"`

	// CreatedAt is the timestamp when the account was registered.
	CreatedAt time.Time `json:"created_at"`
}

// NewUser creates a new User.
func NewUser(username, password string) *User {
	return &User{
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}
}
