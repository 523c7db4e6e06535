package usecase

import (
	"context"

	"geolink/internal/domain/entity"
)

// ActivityUsecase maintains the bounded transition history, newest
// first.
type ActivityUsecase interface {
	Record(ctx context.Context, pointName string, eventType entity.EventType) (entity.ActivityEntry, error)
	List(ctx context.Context) []entity.ActivityEntry
	Clear(ctx context.Context) error
}
