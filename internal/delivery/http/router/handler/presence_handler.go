package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"geolink/internal/delivery/http/response"
	"geolink/internal/usecase"
	"geolink/internal/usecase/impl"
	"geolink/internal/util"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// PresenceHandlerParams holds dependencies for PresenceHandler, injected by Fx.
type PresenceHandlerParams struct {
	fx.In

	PresenceUC usecase.PresenceUsecase
	Logger     *slog.Logger
}

// PresenceHandler holds dependencies for room and peer handlers
type PresenceHandler struct {
	presenceUC usecase.PresenceUsecase
	logger     *slog.Logger
	now        func() time.Time
}

// NewPresenceHandler is the constructor for PresenceHandler
func NewPresenceHandler(params PresenceHandlerParams) *PresenceHandler {
	return &PresenceHandler{
		presenceUC: params.PresenceUC,
		logger:     params.Logger,
		now:        time.Now,
	}
}

// PeerResponse represents one peer in the registry
type PeerResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	LastSeen    int64   `json:"lastSeen"` // epoch millis
	LastSeenAgo string  `json:"lastSeenAgo"`
}

// SetRoomRequest represents the request body for joining or leaving a room
type SetRoomRequest struct {
	Code string `json:"code" validate:"max=64"`
}

// ListPeers handles reading the peer registry
func (h *PresenceHandler) ListPeers(c echo.Context) error {
	peers := h.presenceUC.Peers(c.Request().Context())

	now := h.now()
	out := make([]PeerResponse, 0, len(peers))
	for _, peer := range peers {
		out = append(out, PeerResponse{
			ID:          peer.ID,
			Name:        peer.Name,
			Color:       peer.Color,
			Lat:         peer.Lat,
			Lng:         peer.Lng,
			LastSeen:    peer.LastSeen.UnixMilli(),
			LastSeenAgo: util.FormatDuration(now.Sub(peer.LastSeen)),
		})
	}

	return response.Success(c, http.StatusOK, out, "")
}

// GetRoom handles reading the current room and connection state
func (h *PresenceHandler) GetRoom(c echo.Context) error {
	ctx := c.Request().Context()
	data := map[string]any{
		"code":   h.presenceUC.Room(ctx),
		"status": h.presenceUC.Status(ctx),
	}

	return response.Success(c, http.StatusOK, data, "")
}

// SetRoom handles joining a new room, or leaving with an empty code
func (h *PresenceHandler) SetRoom(c echo.Context) error {
	var req SetRoomRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid room input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	if err := h.presenceUC.SetRoom(c.Request().Context(), req.Code); err != nil {
		if errors.Is(err, impl.ErrRoomCodeTooShort) {
			return response.BadRequest(c, "ROOM_CODE_TOO_SHORT", "Room code is too short")
		}
		h.logger.Error("failed to set room", slog.Any("error", err))

		return response.InternalServerError(c, "INTERNAL_ERROR", "Something went wrong")
	}

	message := "Room joined"
	if req.Code == "" {
		message = "Room left"
	}

	return response.Success(c, http.StatusOK, nil, message)
}
