package repository

import (
	"context"

	"geolink/internal/domain/entity"
)

// SettingsRepository persists the small per-device settings. Each value
// is stored independently so a corrupt blob only loses that one
// setting. Load methods return the zero value (or nil identity) when
// nothing has been stored yet.
type SettingsRepository interface {
	LoadIdentity(ctx context.Context) (*entity.Identity, error)
	SaveIdentity(ctx context.Context, identity entity.Identity) error

	LoadRoomCode(ctx context.Context) (string, error)
	SaveRoomCode(ctx context.Context, code string) error

	LoadTheme(ctx context.Context) (string, error)
	SaveTheme(ctx context.Context, theme string) error
}
