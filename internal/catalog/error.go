package catalog

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidPrice    = errors.New("event price must not be negative")
	ErrInvalidCapacity = errors.New("event capacity must not be negative")
	ErrMissingName     = errors.New("event name is required")

	// -- Resource State --
	ErrEventNotFound = errors.New("event not found")
	ErrNotOwner      = errors.New("event belongs to another vendor")
)
