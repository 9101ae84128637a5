package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated  = errors.New("buyer identity required")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("a checkout is already in progress for this session")
)

// ValidationError carries field-level messages for the billing form. It
// never reaches the store; no write happens while one is pending.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid billing details (%d fields)", len(e.Fields))
}

// WriteError is returned when the line batch fails after the order row
// was created. Err is the original insert failure and is what Error()
// reports; CompensationErr records a failed cleanup delete and must never
// mask Err.
type WriteError struct {
	Err             error
	CompensationErr error
}

func (e *WriteError) Error() string {
	return e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}
