// Package models defines the server-side domain entities.
package models

import "time"

// User is an account record. Created at registration and immutable
// afterwards; there are no profile edits or account deletion.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	CreatedAt    time.Time
}
