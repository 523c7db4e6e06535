package entity

import "time"

// NotificationKind selects how a transient notification is styled by
// whatever front end reads it.
type NotificationKind string

const (
	NotificationTrigger NotificationKind = "trigger"
	NotificationInfo    NotificationKind = "info"
	NotificationError   NotificationKind = "error"
)

// Notification is the daemon-side equivalent of a toast: at most one
// exists at a time, it is replaced by any newer one, and it disappears
// on its own once ExpiresAt passes.
type Notification struct {
	Title     string           `json:"title"`
	Body      string           `json:"body"`
	Kind      NotificationKind `json:"kind"`
	ExpiresAt time.Time        `json:"expiresAt"`
}
