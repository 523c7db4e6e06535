// Package trigger performs outbound webhook calls for zone transitions.
package trigger

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"geolink/config"
	"geolink/internal/domain/service"

	"go.uber.org/fx"
)

// Params defines the parameters required for the HTTP invoker.
type Params struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

type httpInvoker struct {
	client *http.Client
	logger *slog.Logger
}

// NewHTTPInvoker creates the fire-and-forget webhook caller. One GET
// per invocation, response discarded, all failures swallowed.
func NewHTTPInvoker(params Params) service.TriggerInvoker {
	return &httpInvoker{
		client: &http.Client{
			Timeout: params.Config.Trigger.Timeout,
		},
		logger: params.Logger,
	}
}

// Invoke launches the call on its own goroutine so geofence bookkeeping
// is never blocked. The call is detached from the caller's context on
// purpose: once issued it cannot be cancelled.
func (i *httpInvoker) Invoke(_ context.Context, uri string) {
	if uri == "" {
		return
	}

	go func() {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, uri, nil)
		if err != nil {
			i.logger.Debug("trigger request build failed",
				slog.String("uri", uri),
				slog.Any("error", err),
			)

			return
		}

		resp, err := i.client.Do(req)
		if err != nil {
			i.logger.Debug("trigger call failed",
				slog.String("uri", uri),
				slog.Any("error", err),
			)

			return
		}
		defer resp.Body.Close()

		// Drain so the connection can be reused; the body itself is
		// never inspected.
		_, _ = io.Copy(io.Discard, resp.Body)
	}()
}
