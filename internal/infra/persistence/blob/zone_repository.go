package blob

import (
	"context"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
)

const zonesKey = "zones.json"

type zoneRepository struct {
	store *Store
}

// NewZoneRepository creates a blob-backed zone repository.
func NewZoneRepository(store *Store) repository.ZoneRepository {
	return &zoneRepository{store: store}
}

func (r *zoneRepository) LoadZones(ctx context.Context) ([]entity.Zone, error) {
	var zones []entity.Zone
	if _, err := r.store.readJSON(ctx, zonesKey, &zones); err != nil {
		return nil, err
	}

	return zones, nil
}

func (r *zoneRepository) SaveZones(ctx context.Context, zones []entity.Zone) error {
	if zones == nil {
		zones = []entity.Zone{}
	}

	return r.store.writeJSON(ctx, zonesKey, zones)
}
