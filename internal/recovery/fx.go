package recovery

import (
	"context"

	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/domain"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/repository"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/recovery/service"
)

var Module = fx.Module("recovery.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
	fx.Provide(func(s *service.Service) domain.Service { return s }),
	fx.Invoke(registerShutdown),
)

func registerShutdown(lc fx.Lifecycle, s *service.Service) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.Shutdown()
			return nil
		},
	})
}
