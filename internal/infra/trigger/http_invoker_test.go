package trigger

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"geolink/config"

	"github.com/stretchr/testify/assert"
)

func newInvoker(t *testing.T) *httpInvoker {
	t.Helper()
	cfg := &config.Config{Trigger: &config.TriggerConfig{Timeout: 2 * time.Second}}
	inv := NewHTTPInvoker(Params{
		Config: cfg,
		Logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
	})

	return inv.(*httpInvoker)
}

func TestInvoke_HitsURIOnce(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	inv := newInvoker(t)
	inv.Invoke(context.Background(), srv.URL)

	assert.Eventually(t, func() bool {
		return hits.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestInvoke_FailureIsSwallowed(t *testing.T) {
	inv := newInvoker(t)

	// Nothing listening here; the call must not panic or surface an error.
	inv.Invoke(context.Background(), "http://127.0.0.1:1/unreachable")
	inv.Invoke(context.Background(), "://not-a-uri")
	inv.Invoke(context.Background(), "")

	time.Sleep(50 * time.Millisecond)
}

func TestInvoke_DoesNotBlockCaller(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	inv := newInvoker(t)

	start := time.Now()
	inv.Invoke(context.Background(), srv.URL)
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}
