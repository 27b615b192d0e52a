package snapshot

import (
	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/repository"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/snapshot/service"
)

var Module = fx.Module("snapshot.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
