package analytics

import (
	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/analytics/service"
)

var Module = fx.Module("analytics.service",
	fx.Provide(service.NewService),
)
