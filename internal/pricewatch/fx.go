package pricewatch

import (
	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/repository"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/service"
)

var Module = fx.Module("pricewatch.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewService),
)
