package notify

import (
	"testing"
	"time"

	"geolink/config"
	"geolink/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(ttl time.Duration) (*notifier, *time.Time) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	n := New(Params{
		Config: &config.Config{Fence: &config.FenceConfig{NotificationTTL: ttl}},
	}).(*notifier)
	n.now = func() time.Time { return now }

	return n, &now
}

func TestNotifier_PublishAndRead(t *testing.T) {
	n, _ := newTestNotifier(4 * time.Second)

	n.Publish("Zone entry", "Home", entity.NotificationTrigger)

	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Zone entry", got.Title)
	assert.Equal(t, "Home", got.Body)
	assert.Equal(t, entity.NotificationTrigger, got.Kind)
}

func TestNotifier_EmptyByDefault(t *testing.T) {
	n, _ := newTestNotifier(4 * time.Second)

	_, ok := n.Current()
	assert.False(t, ok)
}

func TestNotifier_ExpiresAfterTTL(t *testing.T) {
	n, now := newTestNotifier(4 * time.Second)

	n.Publish("Zone exit", "School", entity.NotificationInfo)

	*now = now.Add(3 * time.Second)
	_, ok := n.Current()
	assert.True(t, ok)

	*now = now.Add(2 * time.Second)
	_, ok = n.Current()
	assert.False(t, ok)
}

func TestNotifier_NewerReplacesOlder(t *testing.T) {
	n, _ := newTestNotifier(4 * time.Second)

	n.Publish("Zone entry", "Home", entity.NotificationTrigger)
	n.Publish("Zone exit", "Home", entity.NotificationInfo)

	got, ok := n.Current()
	require.True(t, ok)
	assert.Equal(t, "Zone exit", got.Title)
	assert.Equal(t, entity.NotificationInfo, got.Kind)
}
