// Package service contains the business logic.
//
// It sits between the handler and repository layers: it receives validated
// data from handlers, performs business operations, and calls repository
// methods for persistence.
package service

import (
	"github.com/deppfellow/portal-platform/internal/lib/job"
	"github.com/deppfellow/portal-platform/internal/repository"
	"github.com/deppfellow/portal-platform/internal/server"
)

// Services is a container grouping all business services.
type Services struct {
	Auth       *AuthService
	Ticketing  *TicketingService
	MasterData *MasterDataService
	Reporting  *ReportingService
	Logs       *LogService
	Job        *job.JobService
}

// NewServices constructs the service container.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:       NewAuthService(s, repos),
		Ticketing:  NewTicketingService(s, repos),
		MasterData: NewMasterDataService(s, repos),
		Reporting:  NewReportingService(s),
		Logs:       NewLogService(s),
		Job:        s.Job,
	}, nil
}
