// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Pacer.

It provides a rich error type that bridges the gap between low-level store/
cache errors and high-level HTTP responses, preserving the originating kind
for filtering.

Architecture:

  - AppError: a struct carrying a Kind (the taxonomy the core reasons about),
    an HTTPStatus (derived once at construction, consulted only at the
    transport edge), a client-safe Message, and optional field-level details.
  - Every store-level, cache-level, and validation-level error converges on
    this one tagged type so callers can filter by Kind.
*/
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the taxonomy of error categories the core can produce.
type Kind string

const (
	// KindPersistence — underlying store unavailable, malformed row, or a
	// constraint violation unrelated to a recognised business rule. Always
	// propagated; never retried by the core.
	KindPersistence Kind = "PERSISTENCE_ERROR"

	// KindValidation — caller-supplied data fails an invariant (unknown
	// uname, unknown sym, bad score, non-teacher referenced as teacher,
	// role mismatch on login).
	KindValidation Kind = "VALIDATION_ERROR"

	// KindConflict — insert of a uname or sym already in use. The batch is
	// refused atomically; Details enumerates the conflicts.
	KindConflict Kind = "CONFLICT_ERROR"

	// KindPolicy — "cannot delete teacher with students", "cannot delete
	// course with goals", "cannot delete chapter with goals". Details lists
	// the blocking entities.
	KindPolicy Kind = "POLICY_ERROR"

	// KindAuth — bad password, bad key, expired key. Reported to the caller
	// uniformly; the core never leaks "user does not exist" on login.
	KindAuth Kind = "AUTH_ERROR"

	// KindCrossStoreInconsistency — auth store committed, domain store
	// failed to commit (or vice versa).
	KindCrossStoreInconsistency Kind = "CROSS_STORE_INCONSISTENCY"
)

// FieldError represents a single field-level validation failure, or — for
// KindPolicy/KindConflict — a single blocking/offending entity.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is the canonical error type for the Pacer core.
//
// # Security
//
// Cause is for server-side logging only and is never sent to clients.
type AppError struct {
	Kind       Kind         `json:"kind"`
	Code       string       `json:"code"`
	Message    string       `json:"error"`
	HTTPStatus int          `json:"-"`
	Cause      error        `json:"-"`
	Details    []FieldError `json:"details,omitempty"`
}

func (e *AppError) Error() string { return e.Message }
func (e *AppError) Unwrap() error { return e.Cause }

// # Kind constructors (preferred — see spec §7)

// NotFound creates a [KindPersistence] error for a missing row. A missing
// row is a storage-layer fact, not a caller-validation failure.
func NotFound(resource string) *AppError {
	return &AppError{
		Kind:       KindPersistence,
		Code:       "NOT_FOUND",
		Message:    resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Persistence wraps an unexpected store-level failure.
func Persistence(cause error) *AppError {
	return &AppError{
		Kind:       KindPersistence,
		Code:       "PERSISTENCE_ERROR",
		Message:    "a storage error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// ValidationError creates a [KindValidation] error with optional per-field
// or per-row details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:       KindValidation,
		Code:       "VALIDATION_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

// Conflict creates a [KindConflict] error; Details enumerates conflicts.
func Conflict(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:       KindConflict,
		Code:       "CONFLICT",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

// Policy creates a [KindPolicy] error; Details lists blocking entities.
func Policy(msg string, details ...FieldError) *AppError {
	return &AppError{
		Kind:       KindPolicy,
		Code:       "POLICY_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusConflict,
		Details:    details,
	}
}

// Auth creates a [KindAuth] error, reported uniformly regardless of the
// underlying reason (bad password, bad key, expired key, unknown user).
func Auth(msg string) *AppError {
	return &AppError{
		Kind:       KindAuth,
		Code:       "AUTH_ERROR",
		Message:    msg,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Unauthorized is an alias of [Auth] kept for HTTP-layer readability.
func Unauthorized(msg string) *AppError { return Auth(msg) }

// Forbidden creates a 403 [KindAuth] error for an authenticated-but-
// insufficiently-privileged caller.
func Forbidden(msg string) *AppError {
	return &AppError{
		Kind:       KindAuth,
		Code:       "FORBIDDEN",
		Message:    msg,
		HTTPStatus: http.StatusForbidden,
	}
}

// CrossStoreInconsistency wraps a partial cross-store commit failure. The
// client-facing message never includes either store's identifiers; callers
// must log those themselves at WARN before returning this.
func CrossStoreInconsistency(cause error) *AppError {
	return &AppError{
		Kind:       KindCrossStoreInconsistency,
		Code:       "CROSS_STORE_INCONSISTENCY",
		Message:    "auth DB may be out of sync with data DB",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// RateLimited creates a 429 error (transport-level concern, no Kind).
func RateLimited(retryAfterSeconds int) *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    fmt.Sprintf("Too many requests. Try again in %ds.", retryAfterSeconds),
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// Internal creates a 500 error wrapping an unexpected server-side failure.
func Internal(cause error) *AppError {
	return &AppError{
		Kind:       KindPersistence,
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// Is reports whether err (or any error in its chain) is an [*AppError] of kind.
func Is(err error, kind Kind) bool {
	ae := As(err)
	return ae != nil && ae.Kind == kind
}
