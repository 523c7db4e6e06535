package service

import (
	"geolink/internal/domain/entity"
)

// Notifier holds the single transient user-visible notification. A new
// publish replaces the current one; Current reports nothing once the
// notification has expired.
type Notifier interface {
	Publish(title, body string, kind entity.NotificationKind)
	Current() (entity.Notification, bool)
}
