// Package sqlerr normalizes PostgreSQL driver errors.
//
// Raw pgconn errors carry SQLSTATE codes and constraint metadata; this
// package maps them onto a small set of application codes so the global
// error handler can translate database failures into clean client responses
// without leaking driver internals.
package sqlerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Code categorizes a database failure.
type Code int

const (
	Other Code = iota
	UniqueViolation
	ForeignKeyViolation
	NotNullViolation
	CheckViolation
	NoRows
	ConnectionFailure
)

// Error is the normalized database error.
type Error struct {
	Code           Code
	DatabaseCode   string // original SQLSTATE
	Message        string
	TableName      string
	ColumnName     string
	ConstraintName string

	driverErr error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the original driver error for errors.As chains.
func (e *Error) Unwrap() error {
	return e.driverErr
}

// ErrCode reports the mapped Code for err, or Other when err is not a
// normalized database error.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// MapCode maps a PostgreSQL SQLSTATE onto an application Code.
func MapCode(sqlstate string) Code {
	switch sqlstate {
	case "23505":
		return UniqueViolation
	case "23503":
		return ForeignKeyViolation
	case "23502":
		return NotNullViolation
	case "23514":
		return CheckViolation
	case "08000", "08003", "08006":
		return ConnectionFailure
	}
	return Other
}

// ConvertPgError converts a raw pgconn.PgError into a normalized Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}
