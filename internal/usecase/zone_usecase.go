// Package usecase defines the application-facing contracts of the
// daemon. Handlers and the worker engine depend on these interfaces,
// never on the concrete services in impl.
package usecase

import (
	"context"

	"geolink/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateZoneInput represents the input for creating a new zone
type CreateZoneInput struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	Radius       float64 `json:"radius"`
	EntryTrigger string  `json:"entryTrigger"`
	ExitTrigger  string  `json:"exitTrigger"`
	Description  string  `json:"description"`
}

// UpdateZoneInput represents the input for updating an existing zone.
// Nil fields are left untouched.
type UpdateZoneInput struct {
	Name         *string  `json:"name,omitempty"`
	Lat          *float64 `json:"lat,omitempty"`
	Lng          *float64 `json:"lng,omitempty"`
	Radius       *float64 `json:"radius,omitempty"`
	EntryTrigger *string  `json:"entryTrigger,omitempty"`
	ExitTrigger  *string  `json:"exitTrigger,omitempty"`
	Description  *string  `json:"description,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}

// ImportResult reports what an import call did. When Applied is false
// the payload was only validated and counted; nothing changed.
type ImportResult struct {
	Count   int  `json:"count"`
	Applied bool `json:"applied"`
}

// ZoneUsecase defines the interface for zone management use cases
type ZoneUsecase interface {
	ListZones(ctx context.Context) []entity.Zone
	GetZone(ctx context.Context, id uuid.UUID) (entity.Zone, error)
	CreateZone(ctx context.Context, input *CreateZoneInput) (entity.Zone, error)
	UpdateZone(ctx context.Context, id uuid.UUID, input *UpdateZoneInput) (entity.Zone, error)
	MoveZone(ctx context.Context, id uuid.UUID, lat, lng float64) (entity.Zone, error)
	DeleteZone(ctx context.Context, id uuid.UUID) error
	ClearZones(ctx context.Context) error

	// Export renders the full zone list as a pretty-printed JSON
	// document suitable for re-import.
	Export(ctx context.Context) ([]byte, error)
	// Import replaces the zone list with a previously exported
	// document. Without confirm it only validates and reports the
	// would-be count.
	Import(ctx context.Context, data []byte, confirm bool) (ImportResult, error)
}
