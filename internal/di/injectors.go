//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"

	"wsd/internal"
	"wsd/internal/controllers"
	"wsd/internal/ledger"
	"wsd/internal/messages"
	"wsd/internal/providers"
	"wsd/internal/services"
	"wsd/internal/structures"
	"wsd/internal/watch"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,

		ledger.NewZstdCompressor,
		ledger.NewFileManager,
		services.NewRecordService,
		messages.NewDispatcher,
		watch.NewDailyGuard,
		watch.NewDetector,
		wire.Bind(new(watch.DetectorInterface), new(*watch.Detector)),
		wire.Bind(new(providers.SessionCounter), new(*watch.Detector)),
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		ledger.NewScheduler,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
