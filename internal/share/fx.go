package share

import (
	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/repository"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/share/service"
)

var Module = fx.Module("share.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
