// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"geolink/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	ZoneHandler     *handler.ZoneHandler
	LocationHandler *handler.LocationHandler
	ActivityHandler *handler.ActivityHandler
	PresenceHandler *handler.PresenceHandler
	SettingsHandler *handler.SettingsHandler
	StatusHandler   *handler.StatusHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	zoneHandler     *handler.ZoneHandler
	locationHandler *handler.LocationHandler
	activityHandler *handler.ActivityHandler
	presenceHandler *handler.PresenceHandler
	settingsHandler *handler.SettingsHandler
	statusHandler   *handler.StatusHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		zoneHandler:     params.ZoneHandler,
		locationHandler: params.LocationHandler,
		activityHandler: params.ActivityHandler,
		presenceHandler: params.PresenceHandler,
		settingsHandler: params.SettingsHandler,
		statusHandler:   params.StatusHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)
	e.GET("/status", r.statusHandler.GetStatus)

	zoneGroup := e.Group("/zones")
	{
		zoneGroup.GET("", r.zoneHandler.ListZones)
		zoneGroup.POST("", r.zoneHandler.CreateZone)
		zoneGroup.DELETE("", r.zoneHandler.ClearZones)
		zoneGroup.GET("/export", r.zoneHandler.ExportZones)
		zoneGroup.POST("/import", r.zoneHandler.ImportZones)
		zoneGroup.GET("/:id", r.zoneHandler.GetZone)
		zoneGroup.PUT("/:id", r.zoneHandler.UpdateZone)
		zoneGroup.PATCH("/:id/position", r.zoneHandler.MoveZone)
		zoneGroup.DELETE("/:id", r.zoneHandler.DeleteZone)
	}

	locationGroup := e.Group("/location")
	{
		locationGroup.GET("", r.locationHandler.GetLocation)
		locationGroup.POST("/fix", r.locationHandler.ReportFix)
		locationGroup.POST("/recenter", r.locationHandler.RequestRecenter)
		locationGroup.GET("/recenter", r.locationHandler.ConsumeRecenter)
	}

	e.GET("/activity", r.activityHandler.ListActivity)
	e.DELETE("/activity", r.activityHandler.ClearActivity)

	e.GET("/peers", r.presenceHandler.ListPeers)
	e.GET("/room", r.presenceHandler.GetRoom)
	e.PUT("/room", r.presenceHandler.SetRoom)

	e.GET("/identity", r.settingsHandler.GetIdentity)
	e.PUT("/identity", r.settingsHandler.UpdateIdentity)
	e.GET("/theme", r.settingsHandler.GetTheme)
	e.PUT("/theme", r.settingsHandler.SetTheme)
}
