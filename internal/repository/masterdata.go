package repository

import (
	"context"
	"time"

	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/jackc/pgx/v5"
)

// MasterDataItem is one entry of reference data (categories, statuses,
// priorities, departments) shared across portal modules.
type MasterDataItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MasterDataRepository persists reference data.
type MasterDataRepository struct {
	server *server.Server
}

// NewMasterDataRepository constructs a MasterDataRepository.
func NewMasterDataRepository(s *server.Server) *MasterDataRepository {
	return &MasterDataRepository{server: s}
}

const masterDataColumns = `id, name, type, description, active, created_at, updated_at`

func scanMasterDataItem(row interface{ Scan(dest ...any) error }) (*MasterDataItem, error) {
	item := &MasterDataItem{}
	err := row.Scan(
		&item.ID, &item.Name, &item.Type, &item.Description, &item.Active,
		&item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Create inserts a reference-data entry.
func (r *MasterDataRepository) Create(ctx context.Context, name, itemType, description string) (*MasterDataItem, error) {
	query := `
		INSERT INTO master_data (name, type, description, active, created_at, updated_at)
		VALUES ($1, $2, $3, TRUE, NOW(), NOW())
		RETURNING ` + masterDataColumns

	return scanMasterDataItem(r.server.DB.Pool.QueryRow(ctx, query, name, itemType, description))
}

// List returns entries, optionally filtered by type, ordered by name.
func (r *MasterDataRepository) List(ctx context.Context, itemType string) ([]*MasterDataItem, error) {
	query := "SELECT " + masterDataColumns + " FROM master_data"
	args := []any{}
	if itemType != "" {
		query += " WHERE type = $1"
		args = append(args, itemType)
	}
	query += " ORDER BY name ASC"

	rows, err := r.server.DB.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []*MasterDataItem{}
	for rows.Next() {
		item, err := scanMasterDataItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByID returns one entry.
func (r *MasterDataRepository) GetByID(ctx context.Context, id int64) (*MasterDataItem, error) {
	query := "SELECT " + masterDataColumns + " FROM master_data WHERE id = $1"
	return scanMasterDataItem(r.server.DB.Pool.QueryRow(ctx, query, id))
}

// Update replaces name, type and description of an entry.
func (r *MasterDataRepository) Update(ctx context.Context, id int64, name, itemType, description string) (*MasterDataItem, error) {
	query := `
		UPDATE master_data
		SET name = $1, type = $2, description = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + masterDataColumns

	return scanMasterDataItem(r.server.DB.Pool.QueryRow(ctx, query, name, itemType, description, id))
}

// Delete removes an entry.
func (r *MasterDataRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.server.DB.Pool.Exec(ctx, "DELETE FROM master_data WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
