package bulk

import (
	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/repository"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/bulk/service"
)

var Module = fx.Module("bulk.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
