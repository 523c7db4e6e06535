// Package notify holds the single transient notification the daemon
// exposes to its front end.
package notify

import (
	"sync"
	"time"

	"geolink/config"
	"geolink/internal/domain/entity"
	"geolink/internal/domain/service"

	"go.uber.org/fx"
)

// Params defines the parameters required for the notifier.
type Params struct {
	fx.In

	Config *config.Config
}

type notifier struct {
	mu      sync.Mutex
	current *entity.Notification
	ttl     time.Duration
	now     func() time.Time
}

// New creates the transient notifier. At most one notification is
// visible; a newer publish replaces the old one before its TTL runs out.
func New(params Params) service.Notifier {
	return &notifier{
		ttl: params.Config.Fence.NotificationTTL,
		now: time.Now,
	}
}

func (n *notifier) Publish(title, body string, kind entity.NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.current = &entity.Notification{
		Title:     title,
		Body:      body,
		Kind:      kind,
		ExpiresAt: n.now().Add(n.ttl),
	}
}

func (n *notifier) Current() (entity.Notification, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil || !n.now().Before(n.current.ExpiresAt) {
		n.current = nil

		return entity.Notification{}, false
	}

	return *n.current, true
}
