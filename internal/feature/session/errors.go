package session

import "errors"

var (
	// ErrNotLoggedIn is returned when an operation requires an authenticated
	// customer and none is present.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrInvalidTransition is returned when an event is not defined for the
	// current view.
	ErrInvalidTransition = errors.New("invalid view transition")

	// ErrEmailNotRegistered is returned by the forgot-password sub-flow when
	// the address is not in the store. Unlike login, this flow reports the
	// miss, matching the original behavior.
	ErrEmailNotRegistered = errors.New("email address not found")

	// ErrDeliveryFailed wraps notifier failures. The triggering action has
	// already succeeded when this is returned.
	ErrDeliveryFailed = errors.New("email could not be sent")
)

// ValidationError reports input rejected by the controller before any
// identity or store call.
type ValidationError string

// Error implements the error interface.
func (e ValidationError) Error() string { return string(e) }

// IsValidationError reports whether err is a controller-level validation
// failure.
func IsValidationError(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}
