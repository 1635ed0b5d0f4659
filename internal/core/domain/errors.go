package domain

import (
	"errors"
	"fmt"
)

// Authentication and authorization.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUnauthorized       = errors.New("not authorized")
	ErrForbidden          = errors.New("access forbidden")
)

// Missing resources.
var (
	ErrUserNotFound        = errors.New("user not found")
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrInvoiceNotFound     = errors.New("invoice not found")
)

// Conflicts.
var (
	ErrUserExists     = errors.New("user already exists")
	ErrAlreadyApplied = errors.New("already applied for this job")
	ErrAlreadyPaid    = errors.New("payment already processed")
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrPaymentFailed = errors.New("payment failed")
)

// NewValidationError wraps ErrValidation with a human readable detail.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
