package handler

import (
	"net/http"

	"geolink/internal/delivery/http/response"
	"geolink/internal/domain/entity"
	"geolink/internal/domain/service"
	"geolink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StatusHandlerParams holds dependencies for StatusHandler, injected by Fx.
type StatusHandlerParams struct {
	fx.In

	TrackerUC  usecase.TrackerUsecase
	PresenceUC usecase.PresenceUsecase
	Notifier   service.Notifier
}

// StatusHandler aggregates the daemon state for the front end's status
// bar: connection, GPS, online count and the current notification.
type StatusHandler struct {
	trackerUC  usecase.TrackerUsecase
	presenceUC usecase.PresenceUsecase
	notifier   service.Notifier
}

// NewStatusHandler is the constructor for StatusHandler
func NewStatusHandler(params StatusHandlerParams) *StatusHandler {
	return &StatusHandler{
		trackerUC:  params.TrackerUC,
		presenceUC: params.PresenceUC,
		notifier:   params.Notifier,
	}
}

// GPSStatus describes the state of position tracking
type GPSStatus struct {
	Locating bool    `json:"locating"`
	Accuracy float64 `json:"accuracy,omitempty"`
}

// StatusResponse is the aggregated daemon state
type StatusResponse struct {
	Sync         service.RelayStatus  `json:"sync"`
	Room         string               `json:"room"`
	OnlineCount  int                  `json:"onlineCount"`
	GPS          GPSStatus            `json:"gps"`
	Notification *entity.Notification `json:"notification,omitempty"`
}

// GetStatus handles reading the aggregated daemon state
func (h *StatusHandler) GetStatus(c echo.Context) error {
	ctx := c.Request().Context()

	status := StatusResponse{
		Sync: h.presenceUC.Status(ctx),
		Room: h.presenceUC.Room(ctx),
		GPS:  GPSStatus{Locating: true},
	}

	if fix, ok := h.trackerUC.Current(ctx); ok {
		status.GPS = GPSStatus{Accuracy: fix.Accuracy}
	}

	// The device itself counts as online once it sits in a room.
	if status.Room != "" {
		status.OnlineCount = len(h.presenceUC.Peers(ctx)) + 1
	}

	if notification, ok := h.notifier.Current(); ok {
		status.Notification = &notification
	}

	return response.Success(c, http.StatusOK, status, "")
}

// HealthCheck is a simple liveness endpoint.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
