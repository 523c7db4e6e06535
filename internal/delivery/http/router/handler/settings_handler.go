package handler

import (
	"log/slog"
	"net/http"

	"geolink/internal/delivery/http/response"
	"geolink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SettingsHandlerParams holds dependencies for SettingsHandler, injected by Fx.
type SettingsHandlerParams struct {
	fx.In

	SettingsUC usecase.SettingsUsecase
	Logger     *slog.Logger
}

// SettingsHandler holds dependencies for identity and theme handlers
type SettingsHandler struct {
	settingsUC usecase.SettingsUsecase
	logger     *slog.Logger
}

// NewSettingsHandler is the constructor for SettingsHandler
func NewSettingsHandler(params SettingsHandlerParams) *SettingsHandler {
	return &SettingsHandler{
		settingsUC: params.SettingsUC,
		logger:     params.Logger,
	}
}

// UpdateIdentityRequest represents the request body for updating the identity
type UpdateIdentityRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=32"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// SetThemeRequest represents the request body for switching the map theme
type SetThemeRequest struct {
	Theme string `json:"theme" validate:"required,oneof=dark light"`
}

// GetIdentity handles reading the device identity
func (h *SettingsHandler) GetIdentity(c echo.Context) error {
	identity := h.settingsUC.Identity(c.Request().Context())

	return response.Success(c, http.StatusOK, identity, "")
}

// UpdateIdentity handles updating the identity name and color
func (h *SettingsHandler) UpdateIdentity(c echo.Context) error {
	var req UpdateIdentityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid identity input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	identity, err := h.settingsUC.UpdateIdentity(c.Request().Context(), &usecase.UpdateIdentityInput{
		Name:  req.Name,
		Color: req.Color,
	})
	if err != nil {
		h.logger.Error("failed to update identity", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Something went wrong")
	}

	return response.Success(c, http.StatusOK, identity, "Identity updated")
}

// GetTheme handles reading the map theme
func (h *SettingsHandler) GetTheme(c echo.Context) error {
	theme := h.settingsUC.Theme(c.Request().Context())

	return response.Success(c, http.StatusOK, map[string]string{"theme": theme}, "")
}

// SetTheme handles switching the map theme
func (h *SettingsHandler) SetTheme(c echo.Context) error {
	var req SetThemeRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid theme input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.settingsUC.SetTheme(c.Request().Context(), req.Theme); err != nil {
		h.logger.Error("failed to set theme", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Something went wrong")
	}

	return response.Success(c, http.StatusOK, map[string]string{"theme": req.Theme}, "Theme updated")
}
