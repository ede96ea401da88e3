// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/pacer/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// Wrap inspects a database error and classifies it into a meaningful
// [*apperr.AppError], hiding internal database details from the client.
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	// 2. Constraint violations, classified by SQLSTATE
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource+" already exists", apperr.FieldError{
				Field:   pgErr.ConstraintName,
				Message: "duplicate key",
			})
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError(resource+" references an unknown row", apperr.FieldError{
				Field:   pgErr.ConstraintName,
				Message: "foreign key violation",
			})
		case pgerrcode.CheckViolation:
			return apperr.ValidationError(resource+" violates a constraint", apperr.FieldError{
				Field:   pgErr.ConstraintName,
				Message: "check violation",
			})
		}
	}

	// 3. Unknown query errors become storage errors.
	return apperr.Persistence(err)
}
