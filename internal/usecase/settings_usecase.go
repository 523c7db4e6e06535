package usecase

import (
	"context"

	"geolink/internal/domain/entity"
)

// UpdateIdentityInput represents the input for updating the device
// identity. Nil fields are left untouched; the ID itself never changes.
type UpdateIdentityInput struct {
	Name  *string `json:"name,omitempty"`
	Color *string `json:"color,omitempty"`
}

// SettingsUsecase manages the per-device settings: identity and theme.
type SettingsUsecase interface {
	Identity(ctx context.Context) entity.Identity
	UpdateIdentity(ctx context.Context, input *UpdateIdentityInput) (entity.Identity, error)

	Theme(ctx context.Context) string
	SetTheme(ctx context.Context, theme string) error
}
