package impl

import (
	"context"
	"errors"
	"sync"

	"geolink/internal/domain/entity"
	"geolink/internal/infra/geo"
	"geolink/internal/usecase"
)

// ErrInvalidCoordinates is returned when a reported position is outside
// the valid latitude/longitude ranges.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

const fixQueueSize = 16

type trackerService struct {
	mu       sync.Mutex
	current  *entity.Fix
	recenter bool

	fixes chan entity.Fix
}

// NewTrackerService creates a new tracker service instance.
func NewTrackerService() usecase.TrackerUsecase {
	return &trackerService{
		fixes: make(chan entity.Fix, fixQueueSize),
	}
}

// Report replaces the current fix and queues it for fence evaluation.
// When the queue is full the fix is still recorded as current but not
// queued; a newer fix supersedes it anyway.
func (s *trackerService) Report(_ context.Context, fix entity.Fix) error {
	if !geo.ValidCoordinates(fix.Lat, fix.Lng) {
		return ErrInvalidCoordinates
	}

	s.mu.Lock()
	s.current = &fix
	s.mu.Unlock()

	select {
	case s.fixes <- fix:
	default:
	}

	return nil
}

// Current returns the most recent fix, if any has been reported.
func (s *trackerService) Current(_ context.Context) (entity.Fix, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return entity.Fix{}, false
	}

	return *s.current, true
}

// RequestRecenter latches the one-shot recenter flag.
func (s *trackerService) RequestRecenter(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recenter = true
}

// ConsumeRecenter reads and clears the recenter flag.
func (s *trackerService) ConsumeRecenter(_ context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	requested := s.recenter
	s.recenter = false

	return requested
}

// Fixes returns the queue of reported fixes for the worker engine.
func (s *trackerService) Fixes() <-chan entity.Fix {
	return s.fixes
}
