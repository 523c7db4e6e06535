package impl

import (
	"context"
	"fmt"
	"sync"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
	"geolink/internal/usecase"

	"github.com/google/uuid"
)

const (
	defaultIdentityName  = "Me"
	defaultIdentityColor = "#6366F1"
	defaultTheme         = "dark"
)

type settingsService struct {
	repo repository.SettingsRepository

	mu       sync.Mutex
	identity entity.Identity
	theme    string
}

// NewSettingsService creates a new settings service instance. A device
// identity is generated and persisted on first start; the ID part never
// changes afterwards.
func NewSettingsService(repo repository.SettingsRepository) (usecase.SettingsUsecase, error) {
	ctx := context.Background()

	identity, err := repo.LoadIdentity(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}
	if identity == nil {
		identity = &entity.Identity{
			ID:    uuid.New(),
			Name:  defaultIdentityName,
			Color: defaultIdentityColor,
		}
		if err := repo.SaveIdentity(ctx, *identity); err != nil {
			return nil, fmt.Errorf("failed to save identity: %w", err)
		}
	}

	theme, err := repo.LoadTheme(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load theme: %w", err)
	}
	if theme == "" {
		theme = defaultTheme
	}

	return &settingsService{
		repo:     repo,
		identity: *identity,
		theme:    theme,
	}, nil
}

// Identity returns the device identity.
func (s *settingsService) Identity(_ context.Context) entity.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.identity
}

// UpdateIdentity applies the given fields to the identity and persists
// it.
func (s *settingsService) UpdateIdentity(ctx context.Context, input *usecase.UpdateIdentityInput) (entity.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.identity
	if input.Name != nil {
		updated.Name = *input.Name
	}
	if input.Color != nil {
		updated.Color = *input.Color
	}

	if err := s.repo.SaveIdentity(ctx, updated); err != nil {
		return entity.Identity{}, fmt.Errorf("failed to save identity: %w", err)
	}
	s.identity = updated

	return updated, nil
}

// Theme returns the current map theme.
func (s *settingsService) Theme(_ context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.theme
}

// SetTheme persists a new map theme.
func (s *settingsService) SetTheme(ctx context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.SaveTheme(ctx, theme); err != nil {
		return fmt.Errorf("failed to save theme: %w", err)
	}
	s.theme = theme

	return nil
}
