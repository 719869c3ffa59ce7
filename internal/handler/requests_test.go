package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/deppfellow/portal-platform/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindJSON(t *testing.T, body string, payload validation.Validatable) error {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	return validation.BindAndValidate(c, payload)
}

func TestCreateTicketCollectsAllFieldErrors(t *testing.T) {
	err := bindJSON(t, `{
		"title": "abc",
		"description": "too short",
		"priority": "high",
		"category": "hardware"
	}`, &CreateTicketRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.False(t, httpErr.Success)

	// Both violations are reported together, not just the first.
	require.Len(t, httpErr.Errors, 2)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be at least 5 characters", byField["title"])
	assert.Equal(t, "must be at least 10 characters", byField["description"])
}

func TestCreateTicketRejectsUnknownPriority(t *testing.T) {
	err := bindJSON(t, `{
		"title": "Printer is broken",
		"description": "The office printer does not respond",
		"priority": "urgent",
		"category": "hardware"
	}`, &CreateTicketRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "priority", httpErr.Errors[0].Field)
	assert.Equal(t, "must be one of: low medium high critical", httpErr.Errors[0].Error)
}

func TestCreateTicketValidPayload(t *testing.T) {
	payload := &CreateTicketRequest{}
	err := bindJSON(t, `{
		"title": "Printer is broken",
		"description": "The office printer does not respond to any jobs",
		"priority": "high",
		"category": "hardware",
		"tags": ["printer", "office"]
	}`, payload)

	require.NoError(t, err)
	assert.Equal(t, "Printer is broken", payload.Title)

	// Validating an already-valid payload again yields the same verdict.
	assert.NoError(t, payload.Validate())
}

func TestLoginRequestRules(t *testing.T) {
	err := bindJSON(t, `{"email": "not-an-email", "password": ""}`, &LoginRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 2)

	byField := map[string]string{}
	for _, fe := range httpErr.Errors {
		byField[fe.Field] = fe.Error
	}
	assert.Equal(t, "must be a valid email address", byField["email"])
	assert.Equal(t, "is required", byField["password"])
}

func TestGenerateReportDateFormat(t *testing.T) {
	err := bindJSON(t, `{
		"reportType": "user_activity",
		"startDate": "07/01/2025",
		"endDate": "2025-07-31"
	}`, &GenerateReportRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "startdate", httpErr.Errors[0].Field)
	assert.Equal(t, "must be a valid date in ISO 8601 format", httpErr.Errors[0].Error)
}

func TestMasterDataTypeEnum(t *testing.T) {
	err := bindJSON(t, `{"name": "Hardware", "type": "section"}`, &MasterDataRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "type", httpErr.Errors[0].Field)
}

func TestAddCommentRequiresContent(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content": ""}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	err := validation.BindAndValidate(c, &AddCommentRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "content", httpErr.Errors[0].Field)
	assert.Equal(t, "is required", httpErr.Errors[0].Error)
}

func TestAddCommentBindsTicketID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"content": "Replaced the toner"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("7")

	payload := &AddCommentRequest{}
	require.NoError(t, validation.BindAndValidate(c, payload))
	assert.Equal(t, int64(7), payload.ID)
	assert.Equal(t, "Replaced the toner", payload.Content)
}

func TestExportLogsRejectsUnknownFormat(t *testing.T) {
	err := bindJSON(t, `{"format": "xml"}`, &ExportLogsRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	require.Len(t, httpErr.Errors, 1)
	assert.Equal(t, "format", httpErr.Errors[0].Field)
	assert.Equal(t, "must be one of: csv json", httpErr.Errors[0].Error)
}

func TestMalformedJSONIsBadRequest(t *testing.T) {
	err := bindJSON(t, `{"title": `, &CreateTicketRequest{})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "Invalid request payload", httpErr.Message)
}
