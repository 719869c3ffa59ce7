package handler

import (
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
)

// Handlers groups all HTTP handlers so router setup passes one object around
// instead of many.
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Ticketing  *TicketingHandler
	MasterData *MasterDataHandler
	Dashboard  *DashboardHandler
	Reporting  *ReportingHandler
	Logs       *LogsHandler
	Upload     *UploadHandler
}

// NewHandlers constructs the handler container.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(s),
		Auth:       NewAuthHandler(s, services.Auth),
		Ticketing:  NewTicketingHandler(s, services.Ticketing),
		MasterData: NewMasterDataHandler(s, services.MasterData),
		Dashboard:  NewDashboardHandler(s),
		Reporting:  NewReportingHandler(s, services.Reporting),
		Logs:       NewLogsHandler(s, services.Logs),
		Upload:     NewUploadHandler(s, services.Ticketing),
	}
}
