package usecase

import (
	"context"

	"geolink/internal/domain/entity"
)

// TrackerUsecase holds the device's own position. Report replaces the
// current fix and queues it for fence evaluation; Fixes is consumed by
// the worker engine only.
type TrackerUsecase interface {
	Report(ctx context.Context, fix entity.Fix) error
	Current(ctx context.Context) (entity.Fix, bool)

	// RequestRecenter latches a one-shot recenter flag for the map
	// front end; ConsumeRecenter reads and clears it.
	RequestRecenter(ctx context.Context)
	ConsumeRecenter(ctx context.Context) bool

	Fixes() <-chan entity.Fix
}
