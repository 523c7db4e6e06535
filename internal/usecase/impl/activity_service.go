// Package impl contains the concrete use case services.
package impl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"geolink/config"
	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
	"geolink/internal/usecase"

	"github.com/google/uuid"
)

type activityService struct {
	repo       repository.ActivityRepository
	maxEntries int

	mu      sync.Mutex
	entries []entity.ActivityEntry

	now func() time.Time
}

// NewActivityService creates a new activity service instance. The
// persisted history is loaded eagerly so List never touches storage.
func NewActivityService(repo repository.ActivityRepository, cfg *config.Config) (usecase.ActivityUsecase, error) {
	entries, err := repo.LoadEntries(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load activity entries: %w", err)
	}

	max := cfg.Fence.MaxLogEntries
	if len(entries) > max {
		entries = entries[:max]
	}

	return &activityService{
		repo:       repo,
		maxEntries: max,
		entries:    entries,
		now:        time.Now,
	}, nil
}

// Record prepends a new transition entry and truncates the history to
// the configured bound before persisting it.
func (s *activityService) Record(ctx context.Context, pointName string, eventType entity.EventType) (entity.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := entity.ActivityEntry{
		ID:        uuid.New(),
		PointName: pointName,
		Type:      eventType,
		Timestamp: s.now().UnixMilli(),
	}

	entries := make([]entity.ActivityEntry, 0, len(s.entries)+1)
	entries = append(entries, entry)
	entries = append(entries, s.entries...)
	if len(entries) > s.maxEntries {
		entries = entries[:s.maxEntries]
	}

	if err := s.repo.SaveEntries(ctx, entries); err != nil {
		return entity.ActivityEntry{}, fmt.Errorf("failed to save activity entries: %w", err)
	}
	s.entries = entries

	return entry, nil
}

// List returns the history newest first.
func (s *activityService) List(_ context.Context) []entity.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.ActivityEntry, len(s.entries))
	copy(out, s.entries)

	return out
}

// Clear drops the whole history.
func (s *activityService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveEntries(ctx, []entity.ActivityEntry{}); err != nil {
		return fmt.Errorf("failed to save activity entries: %w", err)
	}
	s.entries = nil

	return nil
}
