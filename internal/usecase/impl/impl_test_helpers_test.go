package impl

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"geolink/config"
	"geolink/internal/domain/entity"
	"geolink/internal/domain/service"
	"geolink/internal/infra/persistence/blob"

	"github.com/stretchr/testify/require"
)

func newTestConfig() *config.Config {
	return &config.Config{
		Relay: &config.RelayConfig{
			URL:               "wss://example.invalid/relay",
			BroadcastInterval: 3 * time.Second,
			ReconnectBackoff:  10 * time.Second,
			MinRoomCodeLength: 3,
			DialTimeout:       15 * time.Second,
		},
		Fence: &config.FenceConfig{
			MaxLogEntries:   50,
			NotificationTTL: 4 * time.Second,
		},
		Presence: &config.PresenceConfig{
			PeerTTL:       30 * time.Second,
			SweepInterval: 5 * time.Second,
		},
		Trigger: &config.TriggerConfig{Timeout: time.Second},
	}
}

func newTestStore(t *testing.T) *blob.Store {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	store, err := blob.NewStore(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// fakeInvoker records every trigger URI it is asked to fire.
type fakeInvoker struct {
	mu   sync.Mutex
	uris []string
}

func (f *fakeInvoker) Invoke(_ context.Context, uri string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uris = append(f.uris, uri)
}

func (f *fakeInvoker) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.uris))
	copy(out, f.uris)

	return out
}

// fakeNotifier records every published notification.
type fakeNotifier struct {
	mu        sync.Mutex
	published []entity.Notification
}

func (f *fakeNotifier) Publish(title, body string, kind entity.NotificationKind) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.published = append(f.published, entity.Notification{Title: title, Body: body, Kind: kind})
}

func (f *fakeNotifier) Current() (entity.Notification, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.published) == 0 {
		return entity.Notification{}, false
	}

	return f.published[len(f.published)-1], true
}

func (f *fakeNotifier) all() []entity.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]entity.Notification, len(f.published))
	copy(out, f.published)

	return out
}

// fakeRelay records room changes and outbound messages.
type fakeRelay struct {
	mu      sync.Mutex
	rooms   []string
	sent    []service.RelayMessage
	sendErr error
	status  service.RelayStatus
	inbound chan service.RelayMessage
}

func newFakeRelay() *fakeRelay {
	return &fakeRelay{
		status:  service.RelayDisconnected,
		inbound: make(chan service.RelayMessage, 8),
	}
}

func (f *fakeRelay) SetRoom(_ context.Context, room string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.rooms = append(f.rooms, room)
}

func (f *fakeRelay) Send(_ context.Context, msg service.RelayMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, msg)

	return nil
}

func (f *fakeRelay) Inbound() <-chan service.RelayMessage { return f.inbound }

func (f *fakeRelay) Status() service.RelayStatus {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.status
}

func (f *fakeRelay) Close() error { return nil }

func (f *fakeRelay) roomCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, len(f.rooms))
	copy(out, f.rooms)

	return out
}

func (f *fakeRelay) sentMessages() []service.RelayMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]service.RelayMessage, len(f.sent))
	copy(out, f.sent)

	return out
}
