package service

import (
	"context"

	"github.com/deppfellow/portal-platform/internal/repository"
	"github.com/deppfellow/portal-platform/internal/server"
)

// MasterDataService manages shared reference data (categories, statuses,
// priorities, departments). Thin by design: the rules live in validation and
// the SQL in the repository.
type MasterDataService struct {
	server *server.Server
	repos  *repository.Repositories
}

// NewMasterDataService constructs a MasterDataService.
func NewMasterDataService(s *server.Server, repos *repository.Repositories) *MasterDataService {
	return &MasterDataService{
		server: s,
		repos:  repos,
	}
}

// Create adds a reference-data entry.
func (s *MasterDataService) Create(ctx context.Context, name, itemType, description string) (*repository.MasterDataItem, error) {
	item, err := s.repos.MasterData.Create(ctx, name, itemType, description)
	if err != nil {
		return nil, err
	}

	s.server.Logger.Info().
		Int64("item_id", item.ID).
		Str("type", item.Type).
		Msg("master data entry created")

	return item, nil
}

// List returns entries, optionally filtered by type.
func (s *MasterDataService) List(ctx context.Context, itemType string) ([]*repository.MasterDataItem, error) {
	return s.repos.MasterData.List(ctx, itemType)
}

// Get returns one entry.
func (s *MasterDataService) Get(ctx context.Context, id int64) (*repository.MasterDataItem, error) {
	return s.repos.MasterData.GetByID(ctx, id)
}

// Update replaces an entry's fields.
func (s *MasterDataService) Update(ctx context.Context, id int64, name, itemType, description string) (*repository.MasterDataItem, error) {
	return s.repos.MasterData.Update(ctx, id, name, itemType, description)
}

// Delete removes an entry.
func (s *MasterDataService) Delete(ctx context.Context, id int64) error {
	return s.repos.MasterData.Delete(ctx, id)
}
