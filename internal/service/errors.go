package service

import "errors"

// Sentinel errors for the service layer, matched with errors.Is. Every
// validation failure leaving a service wraps one of these.
var (
	// ErrValidation means a required user-entered field is missing or
	// malformed. Handled locally; nothing is persisted.
	ErrValidation = errors.New("validation failed")

	// ErrCapacityExceeded means a bounded collection is already full,
	// currently only the emergency contact list.
	ErrCapacityExceeded = errors.New("capacity exceeded")
)
