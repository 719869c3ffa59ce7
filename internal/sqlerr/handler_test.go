package sqlerr

import (
	"errors"
	"net/http"
	"testing"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(pgx.ErrNoRows))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "The requested record was not found", httpErr.Message)
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:           "23505",
		TableName:      "users",
		ConstraintName: "users_email_key",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusConflict, httpErr.Status)
	assert.Equal(t, "A user with this email already exists", httpErr.Message)
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:      "23503",
		TableName: "tickets",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The referenced Ticket does not exist", httpErr.Message)
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       "23502",
		TableName:  "tickets",
		ColumnName: "due_date",
	}

	httpErr := asHTTPError(t, HandleError(pgErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "The Due Date is required", httpErr.Message)
}

func TestHandleErrorUnknownFaultIsGeneric500(t *testing.T) {
	httpErr := asHTTPError(t, HandleError(errors.New("connection refused: 10.0.0.5:5432")))
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)

	// Driver details must never leak to the client.
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), httpErr.Message)
	assert.NotContains(t, httpErr.Message, "10.0.0.5")
}

func TestMapCode(t *testing.T) {
	assert.Equal(t, UniqueViolation, MapCode("23505"))
	assert.Equal(t, ForeignKeyViolation, MapCode("23503"))
	assert.Equal(t, NotNullViolation, MapCode("23502"))
	assert.Equal(t, CheckViolation, MapCode("23514"))
	assert.Equal(t, ConnectionFailure, MapCode("08006"))
	assert.Equal(t, Other, MapCode("42601"))
}
