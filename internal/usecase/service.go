package usecase

import (
	"pagelens/internal/config"
	"pagelens/internal/ports"
	"pagelens/internal/usecase/adapters"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Service struct {
	Session adapters.SessionService
	Browser adapters.BrowserService
}

type Params struct {
	fx.In

	Logger      *zap.Logger
	Config      *config.Config
	Browser     ports.BrowserManager
	Snapshotter ports.Snapshotter
}

func NewUsecase(params Params) *Service {
	factory := newServiceFactory(params)

	return &Service{
		Session: factory.CreateSessionService(),
		Browser: factory.CreateBrowserService(),
	}
}
