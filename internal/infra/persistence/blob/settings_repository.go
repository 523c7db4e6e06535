package blob

import (
	"context"

	"geolink/internal/domain/entity"
	"geolink/internal/domain/repository"
)

// Each setting is its own blob so one corrupt file only loses that
// setting, never the whole profile.
const (
	identityKey = "identity.json"
	roomKey     = "room_code.json"
	themeKey    = "theme.json"
)

type settingsRepository struct {
	store *Store
}

// NewSettingsRepository creates a blob-backed settings repository.
func NewSettingsRepository(store *Store) repository.SettingsRepository {
	return &settingsRepository{store: store}
}

func (r *settingsRepository) LoadIdentity(ctx context.Context) (*entity.Identity, error) {
	var identity entity.Identity
	ok, err := r.store.readJSON(ctx, identityKey, &identity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	return &identity, nil
}

func (r *settingsRepository) SaveIdentity(ctx context.Context, identity entity.Identity) error {
	return r.store.writeJSON(ctx, identityKey, identity)
}

func (r *settingsRepository) LoadRoomCode(ctx context.Context) (string, error) {
	var code string
	if _, err := r.store.readJSON(ctx, roomKey, &code); err != nil {
		return "", err
	}

	return code, nil
}

func (r *settingsRepository) SaveRoomCode(ctx context.Context, code string) error {
	return r.store.writeJSON(ctx, roomKey, code)
}

func (r *settingsRepository) LoadTheme(ctx context.Context) (string, error) {
	var theme string
	if _, err := r.store.readJSON(ctx, themeKey, &theme); err != nil {
		return "", err
	}

	return theme, nil
}

func (r *settingsRepository) SaveTheme(ctx context.Context, theme string) error {
	return r.store.writeJSON(ctx, themeKey, theme)
}
