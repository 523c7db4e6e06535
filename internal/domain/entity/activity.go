package entity

import (
	"github.com/google/uuid"
)

// EventType classifies a geofence transition.
type EventType string

const (
	EventEntry EventType = "entry"
	EventExit  EventType = "exit"
)

// ActivityEntry records a single geofence transition. PointName is a
// snapshot of the zone name at transition time, not a reference, so the
// entry survives later renames and deletes. Entries are immutable once
// created.
type ActivityEntry struct {
	ID        uuid.UUID `json:"id"`
	PointName string    `json:"pointName"`
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"` // epoch millis
}
