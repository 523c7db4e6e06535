// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/google/uuid"
)

// Zone is a user-defined circular geofence. Crossing its boundary in
// either direction produces an activity entry and, when the matching
// trigger URI is set, a fire-and-forget webhook call.
type Zone struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Lat          float64   `json:"lat"`
	Lng          float64   `json:"lng"`
	Radius       float64   `json:"radius"` // meters, always > 0
	EntryTrigger string    `json:"entryTrigger,omitempty"`
	ExitTrigger  string    `json:"exitTrigger,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
}
