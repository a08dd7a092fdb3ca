package domain

import "time"

// Account is a demo-grade record: the password is stored as given.
// Hardening credential storage is explicitly out of scope here.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
