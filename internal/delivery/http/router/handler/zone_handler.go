// Package handler contains the echo HTTP handlers.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"geolink/internal/delivery/http/response"
	"geolink/internal/usecase"
	"geolink/internal/usecase/impl"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ZoneHandlerParams holds dependencies for ZoneHandler, injected by Fx.
type ZoneHandlerParams struct {
	fx.In

	ZoneUC usecase.ZoneUsecase
	Logger *slog.Logger
}

// ZoneHandler holds dependencies for zone-related handlers
type ZoneHandler struct {
	zoneUC usecase.ZoneUsecase
	logger *slog.Logger
}

// NewZoneHandler is the constructor for ZoneHandler
func NewZoneHandler(params ZoneHandlerParams) *ZoneHandler {
	return &ZoneHandler{
		zoneUC: params.ZoneUC,
		logger: params.Logger,
	}
}

// CreateZoneRequest represents the request body for creating a zone
type CreateZoneRequest struct {
	Name         string  `json:"name" validate:"max=64"`
	Lat          float64 `json:"lat" validate:"min=-90,max=90"`
	Lng          float64 `json:"lng" validate:"min=-180,max=180"`
	Radius       float64 `json:"radius" validate:"omitempty,gt=0"`
	EntryTrigger string  `json:"entryTrigger" validate:"omitempty,url"`
	ExitTrigger  string  `json:"exitTrigger" validate:"omitempty,url"`
	Description  string  `json:"description" validate:"max=256"`
}

// UpdateZoneRequest represents the request body for updating a zone
type UpdateZoneRequest struct {
	Name         *string  `json:"name,omitempty" validate:"omitempty,max=64"`
	Lat          *float64 `json:"lat,omitempty" validate:"omitempty,min=-90,max=90"`
	Lng          *float64 `json:"lng,omitempty" validate:"omitempty,min=-180,max=180"`
	Radius       *float64 `json:"radius,omitempty" validate:"omitempty,gt=0"`
	EntryTrigger *string  `json:"entryTrigger,omitempty" validate:"omitempty,url"`
	ExitTrigger  *string  `json:"exitTrigger,omitempty" validate:"omitempty,url"`
	Description  *string  `json:"description,omitempty" validate:"omitempty,max=256"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// MoveZoneRequest represents the request body for repositioning a zone
type MoveZoneRequest struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" validate:"min=-180,max=180"`
}

// ImportZonesRequest represents the request body for restoring a backup
type ImportZonesRequest struct {
	Zones   json.RawMessage `json:"zones" validate:"required"`
	Confirm bool            `json:"confirm"`
}

// ListZones handles listing all zones
func (h *ZoneHandler) ListZones(c echo.Context) error {
	zones := h.zoneUC.ListZones(c.Request().Context())

	return response.Success(c, http.StatusOK, zones, "")
}

// GetZone handles fetching a single zone
func (h *ZoneHandler) GetZone(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ZONE_ID", "Invalid zone ID")
	}

	zone, err := h.zoneUC.GetZone(c.Request().Context(), id)
	if err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, zone, "")
}

// CreateZone handles creating a new zone
func (h *ZoneHandler) CreateZone(c echo.Context) error {
	var req CreateZoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid zone input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	zone, err := h.zoneUC.CreateZone(c.Request().Context(), &usecase.CreateZoneInput{
		Name:         req.Name,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Radius:       req.Radius,
		EntryTrigger: req.EntryTrigger,
		ExitTrigger:  req.ExitTrigger,
		Description:  req.Description,
	})
	if err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusCreated, zone, "Zone created")
}

// UpdateZone handles updating an existing zone
func (h *ZoneHandler) UpdateZone(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ZONE_ID", "Invalid zone ID")
	}

	var req UpdateZoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid zone input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	zone, err := h.zoneUC.UpdateZone(c.Request().Context(), id, &usecase.UpdateZoneInput{
		Name:         req.Name,
		Lat:          req.Lat,
		Lng:          req.Lng,
		Radius:       req.Radius,
		EntryTrigger: req.EntryTrigger,
		ExitTrigger:  req.ExitTrigger,
		Description:  req.Description,
		IsActive:     req.IsActive,
	})
	if err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, zone, "Zone updated")
}

// MoveZone handles repositioning a zone
func (h *ZoneHandler) MoveZone(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ZONE_ID", "Invalid zone ID")
	}

	var req MoveZoneRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid position input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	zone, err := h.zoneUC.MoveZone(c.Request().Context(), id, req.Lat, req.Lng)
	if err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, zone, "Zone moved")
}

// DeleteZone handles deleting a zone
func (h *ZoneHandler) DeleteZone(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ZONE_ID", "Invalid zone ID")
	}

	if err := h.zoneUC.DeleteZone(c.Request().Context(), id); err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "Zone deleted")
}

// ClearZones handles deleting all zones
func (h *ZoneHandler) ClearZones(c echo.Context) error {
	if err := h.zoneUC.ClearZones(c.Request().Context()); err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, nil, "All zones deleted")
}

// ExportZones handles exporting the zone list as a backup document
func (h *ZoneHandler) ExportZones(c echo.Context) error {
	data, err := h.zoneUC.Export(c.Request().Context())
	if err != nil {
		return h.mapZoneError(c, err)
	}

	return response.Success(c, http.StatusOK, json.RawMessage(data), "")
}

// ImportZones handles restoring a previously exported backup
func (h *ZoneHandler) ImportZones(c echo.Context) error {
	var req ImportZonesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid import input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	result, err := h.zoneUC.Import(c.Request().Context(), req.Zones, req.Confirm)
	if err != nil {
		return h.mapZoneError(c, err)
	}

	message := "Import validated"
	if result.Applied {
		message = "Import applied"
	}

	return response.Success(c, http.StatusOK, result, message)
}

func (h *ZoneHandler) mapZoneError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, impl.ErrZoneNotFound):
		return response.NotFound(c, "ZONE_NOT_FOUND", "Zone not found")
	case errors.Is(err, impl.ErrInvalidCoordinates):
		return response.BadRequest(c, "INVALID_COORDINATES", "Coordinates out of range")
	case errors.Is(err, impl.ErrInvalidRadius):
		return response.BadRequest(c, "INVALID_RADIUS", "Radius must be positive")
	case errors.Is(err, impl.ErrNoZones):
		return response.NotFound(c, "NO_ZONES", "No zones to export")
	case errors.Is(err, impl.ErrImportInvalid):
		return response.UnprocessableEntity(c, "IMPORT_INVALID", err.Error())
	default:
		h.logger.Error("zone operation failed", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Something went wrong")
	}
}
