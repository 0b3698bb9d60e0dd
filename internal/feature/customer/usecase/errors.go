// Package usecase implements the business logic for the customer feature.
package usecase

import "errors"

var (
	// ErrCustomerNotFound is returned when a customer cannot be found by email or ID.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrEmailAlreadyExists is returned when attempting to create a customer with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrMissingProfileFields is returned by UpdateProfile when a required profile field is empty.
	ErrMissingProfileFields = errors.New("first name, last name and phone are required")
)
