// Package models defines the persistent record types shared by
// repositories and services.
package models

import "time"

// User is a registered account. PasswordHash is the argon2id hash of the
// password and the per-record Salt; the plaintext is never stored.
type User struct {
	ID           string
	Name         string
	Email        string
	Salt         []byte
	PasswordHash []byte
	CreatedAt    time.Time
}
