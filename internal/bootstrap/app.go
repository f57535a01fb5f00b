package bootstrap

import (
	"time"

	"go.uber.org/fx"

	"pagelens/internal/browser"
	"pagelens/internal/config"
	"pagelens/internal/console"
	"pagelens/internal/ports"
	"pagelens/internal/snapshot"
	"pagelens/internal/usecase"
)

func NewApp() *fx.App {
	return fx.New(
		fx.Provide(
			config.GetConfig,
			newLogger,
			newTraceProvider,

			fx.Annotate(browser.NewManager, fx.As(new(ports.BrowserManager))),
			fx.Annotate(snapshot.NewService, fx.As(new(ports.Snapshotter))),

			usecase.NewUsecase,

			console.NewInterface,
		),

		fx.Invoke(
			runConsole,
		),

		fx.StartTimeout(10*time.Second),
	)
}
