// Package services defines the business logic for the food catalog, food and
// weight logs, user profiles and calorie goals. This file centralizes the
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Every error returned by a service matches (errors.Is) exactly one of the
// four taxonomy roots below, or one of the account errors:
//
//   - ErrNotFound: a referenced food, user or log does not exist.
//   - ErrExternalLookup: the nutrition source was unreachable or answered
//     with an error status.
//   - ErrValidation: the request was malformed (see ValidationError).
//   - ErrStorage: the database failed.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Taxonomy roots.
var (
	ErrNotFound       = errors.New("not found")
	ErrExternalLookup = errors.New("external lookup failed")
	ErrValidation     = errors.New("validation failed")
	ErrStorage        = errors.New("storage failure")
)

// Not-found refinements; each matches ErrNotFound.
var (
	ErrFoodNotFound      = fmt.Errorf("food %w", ErrNotFound)
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrWeightLogNotFound = fmt.Errorf("weight log %w", ErrNotFound)
)

// Account errors.
var (
	// ErrInvalidCredentials is returned by Login for an unknown username or a
	// wrong password; the two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned by Register when the username exists.
	ErrUsernameTaken = errors.New("username already taken")
)

// ValidationError describes a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// storageErr wraps a database failure so it matches ErrStorage while keeping
// the driver message.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrStorage, err)
}

func isNotFound(err error) bool { return errors.Is(err, gorm.ErrRecordNotFound) }
