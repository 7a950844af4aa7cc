//go:build wireinject
// +build wireinject

package di

import (
	"emojicounter/internal"
	"emojicounter/internal/controllers"
	"emojicounter/internal/providers"
	"emojicounter/internal/services"
	"emojicounter/internal/statistic"
	"emojicounter/internal/structures"
	wire "github.com/google/wire"
)

var coreSet = wire.NewSet(
	providers.NewConfigProvider,
	providers.NewLogProvider,
	providers.NewMetricsProvider,
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		coreSet,
		providers.NewInstrumentedCacheProvider,
		providers.NewDiscordProvider,

		statistic.NewFileManager,
		wire.Bind(new(services.SnapshotWriter), new(*statistic.FileManager)),
		services.NewEmojiService,
		wire.Bind(new(services.EmojiServiceInterface), new(*services.EmojiService)),
		statistic.NewSnapshotter,
		controllers.NewBotController,
		controllers.NewApiController,
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}

func InitRegistrar(cfg *structures.CliFlags) (*controllers.CommandRegistrar, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewDiscordProvider,
		controllers.NewCommandRegistrar,
	)

	return nil, nil
}
