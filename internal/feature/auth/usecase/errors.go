// Package usecase implements the business logic for the auth feature.
package usecase

import (
	"errors"

	customerusecase "cms_backend/internal/feature/customer/usecase"
)

var (
	// ErrInvalidCredentials is returned when no customer matches the given
	// email and password pair. Unknown email and wrong password are
	// deliberately indistinguishable so registered addresses cannot be probed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrCurrentPasswordWrong is returned by ChangePassword when the supplied
	// current password does not authenticate.
	ErrCurrentPasswordWrong = errors.New("current password is incorrect")

	// ErrEmailAlreadyExists re-exports the store sentinel so identity-service
	// callers depend on a single package.
	ErrEmailAlreadyExists = customerusecase.ErrEmailAlreadyExists

	// ErrCustomerNotFound re-exports the store sentinel for the same reason.
	ErrCustomerNotFound = customerusecase.ErrCustomerNotFound
)
