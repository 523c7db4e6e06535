package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"geolink/internal/delivery/http/response"
	"geolink/internal/domain/entity"
	"geolink/internal/usecase"
	"geolink/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// LocationHandlerParams holds dependencies for LocationHandler, injected by Fx.
type LocationHandlerParams struct {
	fx.In

	TrackerUC usecase.TrackerUsecase
	Logger    *slog.Logger
}

// LocationHandler holds dependencies for position-related handlers
type LocationHandler struct {
	trackerUC usecase.TrackerUsecase
	logger    *slog.Logger
}

// NewLocationHandler is the constructor for LocationHandler
func NewLocationHandler(params LocationHandlerParams) *LocationHandler {
	return &LocationHandler{
		trackerUC: params.TrackerUC,
		logger:    params.Logger,
	}
}

// ReportFixRequest represents the request body for reporting a position fix
type ReportFixRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	Accuracy float64 `json:"accuracy" validate:"min=0"`
}

// ReportFix handles ingesting a new position fix
func (h *LocationHandler) ReportFix(c echo.Context) error {
	var req ReportFixRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid fix input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	fix := entity.Fix{Lat: req.Lat, Lng: req.Lng, Accuracy: req.Accuracy}
	if err := h.trackerUC.Report(c.Request().Context(), fix); err != nil {
		if errors.Is(err, impl.ErrInvalidCoordinates) {
			return response.BadRequest(c, "INVALID_COORDINATES", "Coordinates out of range")
		}
		h.logger.Error("failed to report fix", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Something went wrong")
	}

	return response.Success(c, http.StatusAccepted, nil, "Fix accepted")
}

// GetLocation handles reading the most recent fix
func (h *LocationHandler) GetLocation(c echo.Context) error {
	fix, ok := h.trackerUC.Current(c.Request().Context())
	if !ok {
		return response.NotFound(c, "NO_FIX", "No position reported yet")
	}

	return response.Success(c, http.StatusOK, fix, "")
}

// RequestRecenter handles latching the one-shot recenter flag
func (h *LocationHandler) RequestRecenter(c echo.Context) error {
	h.trackerUC.RequestRecenter(c.Request().Context())

	return response.Success(c, http.StatusOK, nil, "Recenter requested")
}

// ConsumeRecenter handles reading and clearing the recenter flag
func (h *LocationHandler) ConsumeRecenter(c echo.Context) error {
	requested := h.trackerUC.ConsumeRecenter(c.Request().Context())

	return response.Success(c, http.StatusOK, map[string]bool{"recenter": requested}, "")
}
