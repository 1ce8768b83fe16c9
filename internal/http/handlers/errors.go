// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes give clients a stable, machine-readable taxonomy next to the
// human-readable message. Generic codes mirror HTTP status semantics; the
// domain codes correspond to the service error taxonomy:
//
//	not_found          404  food, user or log does not exist
//	validation_failed  400  malformed input (bad date, meal, quantity, ...)
//	lookup_failed      502  the nutrition source failed
//	storage_failed     500  the database failed
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "validation_failed",
//	  "message": "quantity: must be greater than zero"
//	}
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/tbourn/go-nutrition-backend/internal/services"
)

const (
	ErrCodeBadRequest   = "bad_request"
	ErrCodeUnauthorized = "unauthorized"
	ErrCodeNotFound     = "not_found"
	ErrCodeConflict     = "conflict"
	ErrCodeInternal     = "internal_error"

	// Domain-specific:
	ErrCodeValidation       = "validation_failed"
	ErrCodeLookupFailed     = "lookup_failed"
	ErrCodeStorageFailed    = "storage_failed"
	ErrCodeTimeout          = "timeout"
	ErrCodeMethodNotAllowed = "method_not_allowed"
)

// mapError translates a service error into status, code and client message.
// Storage and unknown errors get a generic message; the cause is logged by
// fail.
func mapError(err error) (int, string, string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ErrCodeValidation, ve.Error()
	case errors.Is(err, services.ErrValidation):
		return http.StatusBadRequest, ErrCodeValidation, err.Error()
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound, ErrCodeNotFound, err.Error()
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized, ErrCodeUnauthorized, err.Error()
	case errors.Is(err, services.ErrUsernameTaken):
		return http.StatusConflict, ErrCodeConflict, err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, ErrCodeTimeout, "request timed out"
	case errors.Is(err, services.ErrExternalLookup):
		return http.StatusBadGateway, ErrCodeLookupFailed, "nutrition lookup failed"
	case errors.Is(err, services.ErrStorage):
		return http.StatusInternalServerError, ErrCodeStorageFailed, "storage failure"
	default:
		return http.StatusInternalServerError, ErrCodeInternal, "internal error"
	}
}
