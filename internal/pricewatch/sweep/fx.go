package sweep

import (
	"context"

	"go.uber.org/fx"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
)

var Module = fx.Module("pricewatch.sweep",
	fx.Provide(func(cfg config.Config) Config {
		return Config{
			Interval:      cfg.SweepInterval,
			PriceCacheTTL: cfg.PriceCacheTTL,
		}
	}),
	fx.Provide(NewWorker),
	fx.Invoke(runWorker),
)

func runWorker(lc fx.Lifecycle, worker *Worker) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				worker.RunForever(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}
