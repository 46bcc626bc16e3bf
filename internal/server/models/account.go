package models

import "time"

// Account is an identity record. PasswordHash is the bcrypt hash of the
// registration password; the plaintext is never stored or serialized.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
