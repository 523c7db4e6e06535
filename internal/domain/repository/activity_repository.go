package repository

import (
	"context"

	"geolink/internal/domain/entity"
)

// ActivityRepository persists the bounded activity history, newest
// first, already truncated by the caller.
type ActivityRepository interface {
	LoadEntries(ctx context.Context) ([]entity.ActivityEntry, error)
	SaveEntries(ctx context.Context, entries []entity.ActivityEntry) error
}
