package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HandleError translates a database-layer error into an *errs.HTTPError
// suitable for the client. Errors that look like driver/connection faults
// become a generic 500 so internals are never exposed.
func HandleError(err error) error {
	if err == nil {
		return nil
	}

	// Not-found cases from both pgx and database/sql.
	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("The requested record was not found")
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		sqlErr := ConvertPgError(pgErr)

		switch sqlErr.Code {
		case UniqueViolation:
			return errs.NewConflictError(uniqueViolationMessage(sqlErr))
		case ForeignKeyViolation:
			return errs.NewBadRequestError(
				fmt.Sprintf("The referenced %s does not exist", entityName(sqlErr)), nil)
		case NotNullViolation:
			field := humanizeText(sqlErr.ColumnName)
			if field == "" {
				field = "field"
			}
			return errs.NewBadRequestError(fmt.Sprintf("The %s is required", field), nil)
		case CheckViolation:
			return errs.NewBadRequestError("One or more values do not meet required conditions", nil)
		}
	}

	// Unknown database fault: generic 500, details stay in server logs.
	return errs.NewInternalServerError()
}

func uniqueViolationMessage(sqlErr *Error) string {
	column := extractColumnForUniqueViolation(sqlErr.TableName, sqlErr.ConstraintName)
	if column != "" {
		return fmt.Sprintf("A %s with this %s already exists",
			strings.ToLower(entityName(sqlErr)), strings.ToLower(humanizeText(column)))
	}
	return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName(sqlErr)))
}

// entityName infers a human entity name from column/table metadata.
// A column like "assignee_id" wins over the table name; table names get a
// naive singularization ("tickets" -> "ticket").
func entityName(sqlErr *Error) string {
	if col := strings.ToLower(sqlErr.ColumnName); strings.HasSuffix(col, "_id") {
		return humanizeText(strings.TrimSuffix(col, "_id"))
	}

	if sqlErr.TableName != "" {
		entity := sqlErr.TableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case identifiers into Title Case.
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForUniqueViolation infers the offending column from a unique
// constraint name, supporting "unique_<table>_<column>" and
// "<table>_<column>_key" conventions.
func extractColumnForUniqueViolation(tableName, constraintName string) string {
	if constraintName == "" {
		return ""
	}

	name := strings.ToLower(constraintName)

	if strings.HasPrefix(name, "unique_") {
		rest := strings.TrimPrefix(name, "unique_")
		if tableName != "" && strings.HasPrefix(rest, tableName+"_") {
			return strings.TrimPrefix(rest, tableName+"_")
		}
		return rest
	}

	for _, suffix := range []string{"_key", "_ukey"} {
		if strings.HasSuffix(name, suffix) {
			rest := strings.TrimSuffix(name, suffix)
			if tableName != "" && strings.HasPrefix(rest, tableName+"_") {
				return strings.TrimPrefix(rest, tableName+"_")
			}
			return rest
		}
	}

	return ""
}
