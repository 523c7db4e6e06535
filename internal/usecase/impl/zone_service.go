package impl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
	"geolink/internal/domain/service"
	"geolink/internal/infra/geo"
	"geolink/internal/usecase"

	"github.com/google/uuid"
)

var (
	// ErrZoneNotFound is returned when a zone is not found
	ErrZoneNotFound = errors.New("zone not found")
	// ErrInvalidRadius is returned when a zone radius is not positive
	ErrInvalidRadius = errors.New("zone radius must be positive")
	// ErrNoZones is returned by Export when there is nothing to export
	ErrNoZones = errors.New("no zones to export")
	// ErrImportInvalid is returned when an import payload fails validation
	ErrImportInvalid = errors.New("invalid import payload")
)

const defaultZoneRadius = 100

type zoneService struct {
	repo     repository.ZoneRepository
	fence    usecase.FenceUsecase
	notifier service.Notifier

	mu    sync.Mutex
	zones []entity.Zone
}

// NewZoneService creates a new zone service instance. The persisted
// zone list is loaded eagerly; all reads are served from memory.
func NewZoneService(
	repo repository.ZoneRepository,
	fence usecase.FenceUsecase,
	notifier service.Notifier,
) (usecase.ZoneUsecase, error) {
	zones, err := repo.LoadZones(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to load zones: %w", err)
	}

	return &zoneService{
		repo:     repo,
		fence:    fence,
		notifier: notifier,
		zones:    zones,
	}, nil
}

// ListZones returns all zones in creation order.
func (s *zoneService) ListZones(_ context.Context) []entity.Zone {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Zone, len(s.zones))
	copy(out, s.zones)

	return out
}

// GetZone returns a single zone by ID.
func (s *zoneService) GetZone(_ context.Context, id uuid.UUID) (entity.Zone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, zone := range s.zones {
		if zone.ID == id {
			return zone, nil
		}
	}

	return entity.Zone{}, ErrZoneNotFound
}

// CreateZone adds a new zone. An empty name gets a positional default,
// a zero radius the standard one.
func (s *zoneService) CreateZone(ctx context.Context, input *usecase.CreateZoneInput) (entity.Zone, error) {
	if !geo.ValidCoordinates(input.Lat, input.Lng) {
		return entity.Zone{}, ErrInvalidCoordinates
	}
	if input.Radius < 0 {
		return entity.Zone{}, ErrInvalidRadius
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := input.Name
	if name == "" {
		name = fmt.Sprintf("Zone %d", len(s.zones)+1)
	}
	radius := input.Radius
	if radius == 0 {
		radius = defaultZoneRadius
	}

	zone := entity.Zone{
		ID:           uuid.New(),
		Name:         name,
		Lat:          input.Lat,
		Lng:          input.Lng,
		Radius:       radius,
		EntryTrigger: input.EntryTrigger,
		ExitTrigger:  input.ExitTrigger,
		Description:  input.Description,
		IsActive:     true,
	}

	zones := append(append([]entity.Zone{}, s.zones...), zone)
	if err := s.repo.SaveZones(ctx, zones); err != nil {
		return entity.Zone{}, fmt.Errorf("failed to save zones: %w", err)
	}
	s.zones = zones

	return zone, nil
}

// UpdateZone applies the given fields to an existing zone.
func (s *zoneService) UpdateZone(ctx context.Context, id uuid.UUID, input *usecase.UpdateZoneInput) (entity.Zone, error) {
	if input.Radius != nil && *input.Radius <= 0 {
		return entity.Zone{}, ErrInvalidRadius
	}
	if input.Lat != nil || input.Lng != nil {
		if input.Lat == nil || input.Lng == nil || !geo.ValidCoordinates(*input.Lat, *input.Lng) {
			return entity.Zone{}, ErrInvalidCoordinates
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return entity.Zone{}, ErrZoneNotFound
	}

	zone := s.zones[idx]
	applyZoneUpdates(&zone, input)

	zones := append([]entity.Zone{}, s.zones...)
	zones[idx] = zone
	if err := s.repo.SaveZones(ctx, zones); err != nil {
		return entity.Zone{}, fmt.Errorf("failed to save zones: %w", err)
	}
	s.zones = zones

	return zone, nil
}

func applyZoneUpdates(zone *entity.Zone, input *usecase.UpdateZoneInput) {
	if input.Name != nil && *input.Name != "" {
		zone.Name = *input.Name
	}
	if input.Lat != nil {
		zone.Lat = *input.Lat
	}
	if input.Lng != nil {
		zone.Lng = *input.Lng
	}
	if input.Radius != nil {
		zone.Radius = *input.Radius
	}
	if input.EntryTrigger != nil {
		zone.EntryTrigger = *input.EntryTrigger
	}
	if input.ExitTrigger != nil {
		zone.ExitTrigger = *input.ExitTrigger
	}
	if input.Description != nil {
		zone.Description = *input.Description
	}
	if input.IsActive != nil {
		zone.IsActive = *input.IsActive
	}
}

// MoveZone repositions a zone, keeping everything else intact. The
// fence state is untouched: membership is re-evaluated against the new
// position on the next fix.
func (s *zoneService) MoveZone(ctx context.Context, id uuid.UUID, lat, lng float64) (entity.Zone, error) {
	return s.UpdateZone(ctx, id, &usecase.UpdateZoneInput{Lat: &lat, Lng: &lng})
}

// DeleteZone removes a zone and forgets its fence membership, so a
// later zone at the same spot starts outside.
func (s *zoneService) DeleteZone(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOfLocked(id)
	if idx < 0 {
		return ErrZoneNotFound
	}

	zones := append([]entity.Zone{}, s.zones[:idx]...)
	zones = append(zones, s.zones[idx+1:]...)
	if err := s.repo.SaveZones(ctx, zones); err != nil {
		return fmt.Errorf("failed to save zones: %w", err)
	}
	s.zones = zones
	s.fence.Forget(id)

	return nil
}

// ClearZones removes all zones and resets the fence state.
func (s *zoneService) ClearZones(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveZones(ctx, []entity.Zone{}); err != nil {
		return fmt.Errorf("failed to save zones: %w", err)
	}
	s.zones = nil
	s.fence.Reset()

	return nil
}

// Export renders the zone list as an indented JSON document.
func (s *zoneService) Export(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.zones) == 0 {
		s.notifier.Publish("Export", "No zones to export", entity.NotificationInfo)

		return nil, ErrNoZones
	}

	data, err := json.MarshalIndent(s.zones, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal zones: %w", err)
	}

	return data, nil
}

// importedZone mirrors the export document with optional fields, so
// presence of the required ones can be checked explicitly.
type importedZone struct {
	ID           *uuid.UUID `json:"id"`
	Name         *string    `json:"name"`
	Lat          *float64   `json:"lat"`
	Lng          *float64   `json:"lng"`
	Radius       *float64   `json:"radius"`
	EntryTrigger *string    `json:"entryTrigger"`
	ExitTrigger  *string    `json:"exitTrigger"`
	Description  *string    `json:"description"`
	IsActive     *bool      `json:"isActive"`
}

// Import validates a backup document and, when confirmed, replaces the
// whole zone list with it. Every element must carry at least a name and
// coordinates; anything less rejects the entire document.
func (s *zoneService) Import(ctx context.Context, data []byte, confirm bool) (usecase.ImportResult, error) {
	var imported []importedZone
	if err := json.Unmarshal(data, &imported); err != nil {
		s.notifier.Publish("Import", "Could not read backup file", entity.NotificationError)

		return usecase.ImportResult{}, fmt.Errorf("%w: %v", ErrImportInvalid, err)
	}
	if len(imported) == 0 {
		s.notifier.Publish("Import", "Backup is empty or corrupted", entity.NotificationError)

		return usecase.ImportResult{}, fmt.Errorf("%w: empty document", ErrImportInvalid)
	}

	for i, item := range imported {
		if item.Name == nil || item.Lat == nil || item.Lng == nil {
			s.notifier.Publish("Import", "Invalid backup format", entity.NotificationError)

			return usecase.ImportResult{}, fmt.Errorf("%w: element %d is missing name or coordinates", ErrImportInvalid, i)
		}
		if !geo.ValidCoordinates(*item.Lat, *item.Lng) {
			s.notifier.Publish("Import", "Invalid backup format", entity.NotificationError)

			return usecase.ImportResult{}, fmt.Errorf("%w: element %d has out-of-range coordinates", ErrImportInvalid, i)
		}
	}

	if !confirm {
		return usecase.ImportResult{Count: len(imported)}, nil
	}

	zones := make([]entity.Zone, 0, len(imported))
	for _, item := range imported {
		zone := entity.Zone{
			Name:     *item.Name,
			Lat:      *item.Lat,
			Lng:      *item.Lng,
			Radius:   defaultZoneRadius,
			IsActive: true,
		}
		if item.ID != nil {
			zone.ID = *item.ID
		} else {
			zone.ID = uuid.New()
		}
		if item.Radius != nil && *item.Radius > 0 {
			zone.Radius = *item.Radius
		}
		if item.EntryTrigger != nil {
			zone.EntryTrigger = *item.EntryTrigger
		}
		if item.ExitTrigger != nil {
			zone.ExitTrigger = *item.ExitTrigger
		}
		if item.Description != nil {
			zone.Description = *item.Description
		}
		if item.IsActive != nil {
			zone.IsActive = *item.IsActive
		}
		zones = append(zones, zone)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveZones(ctx, zones); err != nil {
		return usecase.ImportResult{}, fmt.Errorf("failed to save zones: %w", err)
	}
	s.zones = zones
	s.fence.Reset()
	s.notifier.Publish("Import", fmt.Sprintf("%d zones restored", len(zones)), entity.NotificationInfo)

	return usecase.ImportResult{Count: len(zones), Applied: true}, nil
}

func (s *zoneService) indexOfLocked(id uuid.UUID) int {
	for i, zone := range s.zones {
		if zone.ID == id {
			return i
		}
	}

	return -1
}
