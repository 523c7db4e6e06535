// Package worker runs the daemon's event loop. Everything that mutates
// fence or presence state funnels through the single Serve goroutine:
// position fixes, inbound relay traffic and the periodic tickers.
package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"geolink/config"
	"geolink/internal/delivery"
	"geolink/internal/domain/lifecycle"
	"geolink/internal/domain/service"
	"geolink/internal/usecase"

	"go.uber.org/fx"
)

// EngineParams holds dependencies for the engine, injected by Fx.
type EngineParams struct {
	fx.In
	fx.Lifecycle

	Config     *config.Config
	Logger     *slog.Logger
	TrackerUC  usecase.TrackerUsecase
	ZoneUC     usecase.ZoneUsecase
	FenceUC    usecase.FenceUsecase
	PresenceUC usecase.PresenceUsecase
	Relay      service.RelayClient
}

type engine struct {
	cfg        *config.Config
	logger     *slog.Logger
	trackerUC  usecase.TrackerUsecase
	zoneUC     usecase.ZoneUsecase
	fenceUC    usecase.FenceUsecase
	presenceUC usecase.PresenceUsecase
	relay      service.RelayClient

	stopOnce sync.Once
	done     chan struct{}
	exited   chan struct{}
}

// NewEngine creates the event loop delivery and hooks its shutdown into
// the fx lifecycle.
func NewEngine(params EngineParams) delivery.Delivery {
	e := newEngine(
		params.Config,
		params.Logger,
		params.TrackerUC,
		params.ZoneUC,
		params.FenceUC,
		params.PresenceUC,
		params.Relay,
	)

	params.Append(fx.Hook{
		OnStop: e.stop,
	})

	return e
}

func newEngine(
	cfg *config.Config,
	logger *slog.Logger,
	trackerUC usecase.TrackerUsecase,
	zoneUC usecase.ZoneUsecase,
	fenceUC usecase.FenceUsecase,
	presenceUC usecase.PresenceUsecase,
	relay service.RelayClient,
) *engine {
	return &engine{
		cfg:        cfg,
		logger:     logger,
		trackerUC:  trackerUC,
		zoneUC:     zoneUC,
		fenceUC:    fenceUC,
		presenceUC: presenceUC,
		relay:      relay,
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
	}
}

// Serve runs the event loop until the engine is stopped.
func (e *engine) Serve(ctx context.Context) error {
	defer close(e.exited)

	broadcast := time.NewTicker(e.cfg.Relay.BroadcastInterval)
	defer broadcast.Stop()
	sweep := time.NewTicker(e.cfg.Presence.SweepInterval)
	defer sweep.Stop()

	e.logger.Info("Starting engine",
		slog.Duration("broadcastInterval", e.cfg.Relay.BroadcastInterval),
		slog.Duration("sweepInterval", e.cfg.Presence.SweepInterval),
	)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-e.done:
			return nil

		case fix := <-e.trackerUC.Fixes():
			zones := e.zoneUC.ListZones(ctx)
			e.fenceUC.Evaluate(ctx, fix, zones)

		case msg := <-e.relay.Inbound():
			e.presenceUC.HandleBroadcast(ctx, msg)

		case <-broadcast.C:
			// Nothing to announce until the first fix arrives.
			fix, ok := e.trackerUC.Current(ctx)
			if !ok {
				continue
			}
			if err := e.presenceUC.Broadcast(ctx, fix); err != nil {
				e.logger.Warn("presence broadcast failed", slog.Any("error", err))
			}

		case <-sweep.C:
			e.presenceUC.EvictStale(ctx)
		}
	}
}

// stop shuts the loop down and tears down the relay connection.
func (e *engine) stop(ctx context.Context) error {
	e.stopOnce.Do(func() {
		close(e.done)
	})

	e.logger.Info("Shutting down engine")
	if err := e.relay.Close(); err != nil {
		e.logger.Warn("relay close failed", slog.Any("error", err))
	}

	select {
	case <-e.exited:
	case <-ctx.Done():
	case <-time.After(lifecycle.DefaultTimeout):
	}

	return nil
}
