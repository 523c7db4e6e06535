package handler

import (
	"log/slog"
	"net/http"

	"geolink/internal/delivery/http/response"
	"geolink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// ActivityHandlerParams holds dependencies for ActivityHandler, injected by Fx.
type ActivityHandlerParams struct {
	fx.In

	ActivityUC usecase.ActivityUsecase
	Logger     *slog.Logger
}

// ActivityHandler holds dependencies for activity log handlers
type ActivityHandler struct {
	activityUC usecase.ActivityUsecase
	logger     *slog.Logger
}

// NewActivityHandler is the constructor for ActivityHandler
func NewActivityHandler(params ActivityHandlerParams) *ActivityHandler {
	return &ActivityHandler{
		activityUC: params.ActivityUC,
		logger:     params.Logger,
	}
}

// ListActivity handles reading the transition history, newest first
func (h *ActivityHandler) ListActivity(c echo.Context) error {
	entries := h.activityUC.List(c.Request().Context())

	return response.Success(c, http.StatusOK, entries, "")
}

// ClearActivity handles dropping the whole history
func (h *ActivityHandler) ClearActivity(c echo.Context) error {
	if err := h.activityUC.Clear(c.Request().Context()); err != nil {
		h.logger.Error("failed to clear activity", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Something went wrong")
	}

	return response.Success(c, http.StatusOK, nil, "Activity cleared")
}
