package entity

import (
	"github.com/google/uuid"
)

// Identity is how this device presents itself to the room. The ID is
// generated once on first start and never changes afterwards.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"` // hex, e.g. "#6366F1"
}
