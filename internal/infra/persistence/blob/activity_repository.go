package blob

import (
	"context"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
)

const activityKey = "activity.json"

type activityRepository struct {
	store *Store
}

// NewActivityRepository creates a blob-backed activity repository.
func NewActivityRepository(store *Store) repository.ActivityRepository {
	return &activityRepository{store: store}
}

func (r *activityRepository) LoadEntries(ctx context.Context) ([]entity.ActivityEntry, error) {
	var entries []entity.ActivityEntry
	if _, err := r.store.readJSON(ctx, activityKey, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *activityRepository) SaveEntries(ctx context.Context, entries []entity.ActivityEntry) error {
	if entries == nil {
		entries = []entity.ActivityEntry{}
	}

	return r.store.writeJSON(ctx, activityKey, entries)
}
