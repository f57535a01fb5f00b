package usecase

import (
	"pagelens/internal/usecase/adapters"
)

type serviceFactory struct {
	deps Params
}

func newServiceFactory(deps Params) *serviceFactory {
	return &serviceFactory{
		deps: deps,
	}
}

func (f *serviceFactory) CreateSessionService() adapters.SessionService {
	return NewSessionService(SessionServiceParams{
		Config:      f.deps.Config,
		Logger:      f.deps.Logger,
		Browser:     f.deps.Browser,
		Snapshotter: f.deps.Snapshotter,
	})
}

func (f *serviceFactory) CreateBrowserService() adapters.BrowserService {
	return f.deps.Browser
}
