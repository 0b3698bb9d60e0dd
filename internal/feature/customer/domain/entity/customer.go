// Package entity defines the domain entities for the customer feature.
package entity

import "time"

// Customer represents a persisted customer account record.
// The email doubles as the natural login identifier and must be unique.
type Customer struct {
	// ID is the unique surrogate key, assigned by the store on creation.
	ID uint `gorm:"primaryKey"`

	// FirstName is the customer's given name.
	FirstName string `gorm:"size:255;not null"`

	// LastName is the customer's family name.
	LastName string `gorm:"size:255;not null"`

	// Email is the login identifier. Unique across all customers and
	// immutable after creation.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Phone is a free-form phone number.
	Phone string `gorm:"size:64;not null"`

	// PasswordHash is the SHA-256 hex digest of the account password.
	// Plaintext passwords are never stored.
	PasswordHash string `gorm:"size:64;not null"`

	// CreatedAt is set once when the record is created and never mutated.
	CreatedAt time.Time
}

// FullName returns the display name used in outgoing mail.
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
