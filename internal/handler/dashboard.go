package handler

import (
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/labstack/echo/v4"
)

// DashboardHandler serves the dashboard module. Metrics are static demo
// payloads until the analytics pipeline lands; the module exists primarily to
// exercise its rate policy and role restrictions.
type DashboardHandler struct {
	Handler
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(s *server.Server) *DashboardHandler {
	return &DashboardHandler{Handler: NewHandler(s)}
}

// DashboardMetrics is the headline-numbers block.
type DashboardMetrics struct {
	TotalUsers    int     `json:"totalUsers"`
	ActiveTickets int     `json:"activeTickets"`
	SystemHealth  float64 `json:"systemHealth"`
	DailyLogins   int     `json:"dailyLogins"`
}

// UserActivityPoint is one day of login activity.
type UserActivityPoint struct {
	Date  string `json:"date"`
	Users int    `json:"users"`
}

// PerformancePoint is one sample of system load.
type PerformancePoint struct {
	Time   string `json:"time"`
	CPU    int    `json:"cpu"`
	Memory int    `json:"memory"`
}

// DashboardData is the full dashboard payload: metrics plus chart series.
type DashboardData struct {
	Metrics DashboardMetrics `json:"metrics"`
	Charts  struct {
		UserActivity      []UserActivityPoint `json:"userActivity"`
		SystemPerformance []PerformancePoint  `json:"systemPerformance"`
	} `json:"charts"`
}

func dashboardData() DashboardData {
	data := DashboardData{
		Metrics: DashboardMetrics{
			TotalUsers:    1250,
			ActiveTickets: 45,
			SystemHealth:  98.5,
			DailyLogins:   342,
		},
	}
	data.Charts.UserActivity = []UserActivityPoint{
		{Date: "2025-07-14", Users: 320},
		{Date: "2025-07-15", Users: 385},
		{Date: "2025-07-16", Users: 290},
		{Date: "2025-07-17", Users: 420},
		{Date: "2025-07-18", Users: 342},
	}
	data.Charts.SystemPerformance = []PerformancePoint{
		{Time: "00:00", CPU: 45, Memory: 62},
		{Time: "06:00", CPU: 52, Memory: 68},
		{Time: "12:00", CPU: 78, Memory: 85},
		{Time: "18:00", CPU: 65, Memory: 72},
	}
	return data
}

// Summary returns the full dashboard payload.
func (h *DashboardHandler) Summary(c echo.Context, req *EmptyRequest) (Response, error) {
	return OK(dashboardData(), "Dashboard data retrieved successfully"), nil
}

// Metrics returns only the headline numbers.
func (h *DashboardHandler) Metrics(c echo.Context, req *EmptyRequest) (Response, error) {
	return OK(dashboardData().Metrics, "Metrics retrieved successfully"), nil
}
