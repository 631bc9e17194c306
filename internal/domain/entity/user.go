package entity

import "time"

// User is the aggregate root for the credential store.
// Password holds a bcrypt hash, never the plain text.
type User struct {
	ID        string
	Firstname string
	Lastname  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
