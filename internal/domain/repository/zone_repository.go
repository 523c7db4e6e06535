// Package repository defines the persistence contracts for the domain.
// Everything is whole-blob: a store loads and saves each collection as
// a single JSON document, never individual records.
package repository

import (
	"context"

	"geolink/internal/domain/entity"
)

// ZoneRepository persists the full zone list. Save always writes the
// complete set; there is no per-zone mutation at this layer.
type ZoneRepository interface {
	LoadZones(ctx context.Context) ([]entity.Zone, error)
	SaveZones(ctx context.Context, zones []entity.Zone) error
}
