package identity

import "errors"

var (
	// -- Authentication --
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailExists        = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")

	// -- Validation & Input --
	ErrInvalidRole       = errors.New("invalid role")
	ErrRoleNotAssignable = errors.New("role cannot be self-assigned")
	ErrMissingFields     = errors.New("name, email and password are required")

	// -- Constants (External Systems) --
	PgUniqueViolation = "23505"
)
