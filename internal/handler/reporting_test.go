package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deppfellow/portal-platform/internal/errs"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReportingContext(t *testing.T) echo.Context {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestReportingGetReturnsCatalogEntry(t *testing.T) {
	h := &ReportingHandler{}
	c := newReportingContext(t)

	resp, err := h.Get(c, &ReportIDRequest{ID: 1})
	require.NoError(t, err)

	report, ok := resp.Data.(ReportSummary)
	require.True(t, ok)
	assert.Equal(t, 1, report.ID)
	assert.Equal(t, "user_activity", report.Type)
}

func TestReportingGetUnknownReportIs404(t *testing.T) {
	h := &ReportingHandler{}
	c := newReportingContext(t)

	_, err := h.Get(c, &ReportIDRequest{ID: 99})

	var httpErr *errs.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.Equal(t, "Report not found", httpErr.Message)
}

func TestReportingExportDefaultsToPDF(t *testing.T) {
	h := &ReportingHandler{}
	c := newReportingContext(t)

	resp, err := h.Export(c, &ExportReportRequest{ID: 2})
	require.NoError(t, err)

	export, ok := resp.Data.(ReportExport)
	require.True(t, ok)
	assert.Equal(t, "pdf", export.Format)
	assert.Equal(t, "/downloads/report_2.pdf", export.DownloadURL)
	assert.Equal(t, "Report exported as PDF successfully", resp.Message)
}

func TestReportingTypesMatchGenerateEnum(t *testing.T) {
	h := &ReportingHandler{}
	c := newReportingContext(t)

	resp, err := h.Types(c, &EmptyRequest{})
	require.NoError(t, err)

	types, ok := resp.Data.([]ReportType)
	require.True(t, ok)
	require.Len(t, types, 3)

	ids := []string{}
	for _, rt := range types {
		ids = append(ids, rt.ID)
	}
	assert.ElementsMatch(t, []string{"user_activity", "system_performance", "ticket_summary"}, ids)
}
