package models

import "errors"

var (
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrConflict is returned when a resource already exists, e.g. a
	// signup with an email that is already registered.
	ErrConflict = errors.New("resource already exists")

	// ErrInvalidCredentials is returned when a login or re-authentication
	// attempt carries a wrong email/password pair.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the acting identity lacks permission
	// for the requested mutation.
	ErrForbidden = errors.New("not allowed to perform this action")

	// ErrInvalidStateTransition is returned when an attempted order
	// mutation violates the lifecycle state machine, e.g. editing an
	// order that is no longer pending or cancelling a terminal order.
	ErrInvalidStateTransition = errors.New("invalid state transition")

	// ErrProfileIncomplete is returned when an order is created for a
	// profile that has no address on file. The caller should complete
	// the profile first.
	ErrProfileIncomplete = errors.New("profile incomplete: please add your address before booking")

	// ErrInvalidToken is returned when a password-reset token is
	// unknown or expired.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrUnknownServiceType is returned when a booking names a service
	// that is not in the catalog.
	ErrUnknownServiceType = errors.New("unknown service type")

	// ErrInvalidPickupDate is returned when the requested pickup date is
	// outside the bookable window (the next seven days).
	ErrInvalidPickupDate = errors.New("pickup date must be within the next seven days")
)

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Message string `json:"message"`
}
