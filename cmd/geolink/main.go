package main

import (
	"context"
	"log/slog"
	"os"

	"geolink/config"
	"geolink/internal/delivery"
	"geolink/internal/delivery/http"
	"geolink/internal/delivery/http/router/handler"
	"geolink/internal/delivery/worker"
	logs "geolink/internal/infra/log"
	"geolink/internal/infra/notify"
	"geolink/internal/infra/persistence/blob"
	"geolink/internal/infra/relay"
	"geolink/internal/infra/trigger"
	"geolink/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		blob.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			blob.NewZoneRepository,
			blob.NewActivityRepository,
			blob.NewSettingsRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			trigger.NewHTTPInvoker,
			notify.New,
			relay.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewActivityService,
			impl.NewFenceService,
			impl.NewZoneService,
			impl.NewTrackerService,
			impl.NewSettingsService,
			impl.NewPresenceService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewZoneHandler,
			handler.NewLocationHandler,
			handler.NewActivityHandler,
			handler.NewPresenceHandler,
			handler.NewSettingsHandler,
			handler.NewStatusHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewEngine,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
