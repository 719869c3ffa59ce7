package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeCleansJSONBodyBeforeHandler(t *testing.T) {
	e := echo.New()

	var seen map[string]interface{}
	e.POST("/tickets", func(c echo.Context) error {
		body, err := io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &seen))
		return c.NoContent(http.StatusOK)
	}, Sanitize())

	payload := `{
		"title": "Broken <script>alert('x')</script>printer",
		"description": "See javascript:alert(1) for details",
		"nested": {"note": "onload= someFn", "count": 7}
	}`

	req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := runRequest(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Broken printer", seen["title"])
	assert.Equal(t, "See alert(1) for details", seen["description"])

	nested := seen["nested"].(map[string]interface{})
	assert.Equal(t, " someFn", nested["note"])
	assert.Equal(t, float64(7), nested["count"])
}

func TestSanitizePreservesLargeIntegers(t *testing.T) {
	e := echo.New()

	var raw []byte
	e.POST("/tickets", func(c echo.Context) error {
		var err error
		raw, err = io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		return c.NoContent(http.StatusOK)
	}, Sanitize())

	// 2^53+1 is not representable as a float64; the re-encode must keep the
	// digits exact.
	payload := `{"externalId":9007199254740993,"note":"onclick= go"}`
	req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := runRequest(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(raw), "9007199254740993")
	assert.NotContains(t, string(raw), "onclick")
}

func TestSanitizeCleansQueryParams(t *testing.T) {
	e := echo.New()

	var got string
	e.GET("/search", func(c echo.Context) error {
		got = c.QueryParam("q")
		return c.NoContent(http.StatusOK)
	}, Sanitize())

	req := httptest.NewRequest(http.MethodGet, "/search?q=javascript:alert(1)", nil)
	rec := runRequest(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alert(1)", got)
}

func TestSanitizeLeavesMalformedJSONForBinder(t *testing.T) {
	e := echo.New()

	var raw []byte
	e.POST("/tickets", func(c echo.Context) error {
		var err error
		raw, err = io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		return c.NoContent(http.StatusOK)
	}, Sanitize())

	body := `{"title": `
	req := httptest.NewRequest(http.MethodPost, "/tickets", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := runRequest(e, req)

	// The malformed body passes through byte-for-byte so the binder can
	// produce its own 400.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, string(raw))
}

func TestSanitizeIgnoresNonJSONBodies(t *testing.T) {
	e := echo.New()

	var raw []byte
	e.POST("/upload", func(c echo.Context) error {
		var err error
		raw, err = io.ReadAll(c.Request().Body)
		require.NoError(t, err)
		return c.NoContent(http.StatusOK)
	}, Sanitize())

	body := "--boundary\r\ncontent with <script>tag</script>\r\n--boundary--"
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, "multipart/form-data; boundary=boundary")
	rec := runRequest(e, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, body, string(raw))
}
