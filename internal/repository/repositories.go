// Package repository handles all interactions with the database.
//
// It contains the parameterized SQL and scanning logic for the portal's
// persisted entities, keeping SQL out of the service layer.
package repository

import (
	"github.com/deppfellow/portal-platform/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users      *UsersRepository
	Tickets    *TicketsRepository
	MasterData *MasterDataRepository
}

// NewRepositories constructs the repository container against the shared
// connection pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Users:      NewUsersRepository(s),
		Tickets:    NewTicketsRepository(s),
		MasterData: NewMasterDataRepository(s),
	}
}
