package impl

import (
	"context"
	"log/slog"
	"sync"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/service"
	"geolink/internal/infra/geo"
	"geolink/internal/usecase"

	"github.com/google/uuid"
)

type fenceService struct {
	activity usecase.ActivityUsecase
	trigger  service.TriggerInvoker
	notifier service.Notifier
	logger   *slog.Logger

	mu     sync.Mutex
	inside map[uuid.UUID]bool
}

// NewFenceService creates a new fence service instance. All membership
// starts outside: the first fix inside a zone is an entry even if the
// device has been sitting there since before startup.
func NewFenceService(
	activity usecase.ActivityUsecase,
	trigger service.TriggerInvoker,
	notifier service.Notifier,
	logger *slog.Logger,
) usecase.FenceUsecase {
	return &fenceService{
		activity: activity,
		trigger:  trigger,
		notifier: notifier,
		logger:   logger,
		inside:   make(map[uuid.UUID]bool),
	}
}

// Evaluate runs the boundary check for one fix. A zone boundary is
// inclusive: distance exactly equal to the radius counts as inside.
func (s *fenceService) Evaluate(ctx context.Context, fix entity.Fix, zones []entity.Zone) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, zone := range zones {
		if !zone.IsActive {
			continue
		}

		dist := geo.Distance(fix.Lat, fix.Lng, zone.Lat, zone.Lng)
		isInside := dist <= zone.Radius
		wasInside := s.inside[zone.ID]

		switch {
		case isInside && !wasInside:
			s.fireTransition(ctx, zone, entity.EventEntry)
		case !isInside && wasInside:
			s.fireTransition(ctx, zone, entity.EventExit)
		}

		s.inside[zone.ID] = isInside
	}
}

func (s *fenceService) fireTransition(ctx context.Context, zone entity.Zone, eventType entity.EventType) {
	uri := zone.EntryTrigger
	title := "Zone entry"
	kind := entity.NotificationTrigger
	if eventType == entity.EventExit {
		uri = zone.ExitTrigger
		title = "Zone exit"
		kind = entity.NotificationInfo
	}

	if uri != "" {
		s.trigger.Invoke(ctx, uri)
	}

	if _, err := s.activity.Record(ctx, zone.Name, eventType); err != nil {
		s.logger.Warn("failed to record zone transition",
			slog.String("zone", zone.Name),
			slog.String("type", string(eventType)),
			slog.Any("error", err),
		)
	}

	s.notifier.Publish(title, zone.Name, kind)
}

// Forget drops the membership of one zone.
func (s *fenceService) Forget(zoneID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.inside, zoneID)
}

// Reset drops all membership state.
func (s *fenceService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.inside = make(map[uuid.UUID]bool)
}

// Memberships returns a copy of the current membership map.
func (s *fenceService) Memberships() map[uuid.UUID]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[uuid.UUID]bool, len(s.inside))
	for id, in := range s.inside {
		out[id] = in
	}

	return out
}
