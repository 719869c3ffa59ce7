package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/deppfellow/portal-platform/internal/sanitize"
	"github.com/labstack/echo/v4"
)

// Sanitize strips script tags, javascript: URIs and inline event handlers
// from every string in the request: JSON body values (recursively), query
// parameter values and path parameter values. Non-JSON and empty bodies pass
// through unchanged; structural validation of the payload is left to the
// handler's binder.
func Sanitize() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			if q := req.URL.Query(); len(q) > 0 {
				for key, values := range q {
					for i, v := range values {
						q[key][i] = sanitize.String(v)
					}
				}
				req.URL.RawQuery = q.Encode()
			}

			names := c.ParamNames()
			if len(names) > 0 {
				values := c.ParamValues()
				cleaned := make([]string, len(values))
				for i, v := range values {
					cleaned[i] = sanitize.String(v)
				}
				c.SetParamValues(cleaned...)
			}

			if req.Body != nil && req.ContentLength != 0 && isJSONRequest(c) {
				body, err := io.ReadAll(req.Body)
				req.Body.Close()
				if err != nil {
					return err
				}

				if cleaned, ok := sanitizeJSONBody(body); ok {
					body = cleaned
					req.ContentLength = int64(len(body))
					req.Header.Set(echo.HeaderContentLength, strconv.Itoa(len(body)))
				}
				req.Body = io.NopCloser(bytes.NewReader(body))
			}

			return next(c)
		}
	}
}

func isJSONRequest(c echo.Context) bool {
	contentType := c.Request().Header.Get(echo.HeaderContentType)
	return strings.HasPrefix(contentType, echo.MIMEApplicationJSON)
}

// sanitizeJSONBody returns the re-encoded body with all string values
// cleaned. Bodies that do not decode as a JSON object or array are returned
// untouched so the handler's binder can produce the proper 400. Numbers are
// decoded as json.Number so re-encoding preserves them digit for digit;
// float64 would corrupt integers past 2^53.
func sanitizeJSONBody(body []byte) ([]byte, bool) {
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()

	var payload interface{}
	if err := decoder.Decode(&payload); err != nil {
		return nil, false
	}

	cleaned, err := json.Marshal(sanitize.Value(payload))
	if err != nil {
		return nil, false
	}
	return cleaned, true
}
