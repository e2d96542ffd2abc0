package model

import "time"

// User represents a registered account. Email is unique and compared
// exactly as stored; ID and email are immutable after registration.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
