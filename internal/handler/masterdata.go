package handler

import (
	"github.com/deppfellow/portal-platform/internal/server"
	"github.com/deppfellow/portal-platform/internal/service"
	"github.com/labstack/echo/v4"
)

// MasterDataHandler serves the reference-data CRUD endpoints.
type MasterDataHandler struct {
	Handler
	masterData *service.MasterDataService
}

// NewMasterDataHandler constructs a MasterDataHandler.
func NewMasterDataHandler(s *server.Server, masterData *service.MasterDataService) *MasterDataHandler {
	return &MasterDataHandler{
		Handler:    NewHandler(s),
		masterData: masterData,
	}
}

// Create adds a reference-data entry.
func (h *MasterDataHandler) Create(c echo.Context, req *MasterDataRequest) (Response, error) {
	item, err := h.masterData.Create(c.Request().Context(), req.Name, req.Type, req.Description)
	if err != nil {
		return Response{}, err
	}
	return OK(item, "Master data created successfully"), nil
}

// List returns entries, optionally filtered by type.
func (h *MasterDataHandler) List(c echo.Context, req *ListMasterDataRequest) (Response, error) {
	items, err := h.masterData.List(c.Request().Context(), req.Type)
	if err != nil {
		return Response{}, err
	}
	return OK(items, "Master data retrieved successfully"), nil
}

// Get returns one entry.
func (h *MasterDataHandler) Get(c echo.Context, req *MasterDataIDRequest) (Response, error) {
	item, err := h.masterData.Get(c.Request().Context(), req.ID)
	if err != nil {
		return Response{}, err
	}
	return OK(item, "Master data retrieved successfully"), nil
}

// Update replaces an entry's fields.
func (h *MasterDataHandler) Update(c echo.Context, req *UpdateMasterDataRequest) (Response, error) {
	item, err := h.masterData.Update(c.Request().Context(), req.ID, req.Name, req.Type, req.Description)
	if err != nil {
		return Response{}, err
	}
	return OK(item, "Master data updated successfully"), nil
}

// Delete removes an entry.
func (h *MasterDataHandler) Delete(c echo.Context, req *MasterDataIDRequest) error {
	return h.masterData.Delete(c.Request().Context(), req.ID)
}
