package domain

import "time"

// AccountManager is an identity record. Username and email uniqueness is
// enforced by the directory service at creation, not here.
type AccountManager struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"passwordHash"`
	CreatedAt    time.Time `json:"dateCreated"`
}
