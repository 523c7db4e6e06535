package usecase

import (
	"context"

	"geolink/internal/domain/entity"

	"github.com/google/uuid"
)

// FenceUsecase owns per-zone inside/outside membership and turns
// boundary crossings into activity entries, notifications and trigger
// calls. Evaluate is driven by the worker engine on every position fix.
type FenceUsecase interface {
	// Evaluate compares one fix against the given zones and fires
	// entry/exit side effects for every active zone whose membership
	// flipped.
	Evaluate(ctx context.Context, fix entity.Fix, zones []entity.Zone)

	// Forget drops the membership state of a single zone, so a
	// recreated zone with the same position starts outside again.
	Forget(zoneID uuid.UUID)

	// Reset drops all membership state.
	Reset()

	// Memberships returns a snapshot of the zones currently considered
	// inside. Zones never evaluated are absent.
	Memberships() map[uuid.UUID]bool
}
