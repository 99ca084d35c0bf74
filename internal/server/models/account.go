// Package models defines the records persisted by the portal.
package models

import "time"

// Account is a registered user identity. Username is always stored lowercase.
type Account struct {
	ID           string
	UserName     string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
}
