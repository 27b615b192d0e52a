package sweep

import (
	"context"
	"errors"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/cache"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/clock"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/config"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/notify"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/observability/metrics"
	"github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/oracle"
	pricewatchdomain "github.com/tiximax/wrlds-ai-integration-6556-sub001/internal/pricewatch/domain"
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Repo   pricewatchdomain.Repository
	Oracle oracle.PriceOracle
	Sink   notify.Sink
	Clock  clock.Clock
	Cfg    config.Config
	Config Config `optional:"true"`
}

// Worker runs the recurring price sweep. Each active watch is evaluated
// independently; one watch's failure never aborts the rest of the sweep.
type Worker struct {
	db     *gorm.DB
	log    *zap.Logger
	repo   pricewatchdomain.Repository
	oracle oracle.PriceOracle
	sink   notify.Sink
	clock  clock.Clock
	cfg    Config

	prices  *cache.TTL[string, float64]
	metrics *metrics.EngagementMetrics
}

func NewWorker(p Params) *Worker {
	cfg := p.Config.withDefaults()
	return &Worker{
		db:     p.DB,
		log:    p.Log.Named("pricewatch.sweep"),
		repo:   p.Repo,
		oracle: p.Oracle,
		sink:   p.Sink,
		clock:  p.Clock,
		cfg:    cfg,
		prices: cache.NewTTL[string, float64](cfg.PriceCacheTTL),
		metrics: metrics.EngagementWithConfig(metrics.Config{
			ServiceName: "cartd",
			Environment: p.Cfg.Environment,
		}),
	}
}

func (w *Worker) RunForever(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := w.RunOnce(ctx); err != nil {
			w.log.Warn("price sweep run failed", zap.Error(err))
		}
	}
}

// RunOnce executes a single sweep over all active watches.
func (w *Worker) RunOnce(ctx context.Context) error {
	watches, err := w.repo.ListActive(ctx, w.db)
	if err != nil {
		return err
	}

	active := 0
	for _, watch := range watches {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		stillActive, err := w.evaluateWatch(ctx, watch)
		if err != nil {
			w.metrics.SweepError()
			w.log.Warn("watch evaluation failed",
				zap.String("watch_id", watch.ID.String()),
				zap.String("product_id", watch.ProductID),
				zap.Error(err),
			)
			stillActive = true
		}
		if stillActive {
			active++
		}
	}

	w.metrics.SweepRun()
	w.metrics.SetActiveWatches(active)
	return nil
}

// evaluateWatch checks one watch against the oracle and, on a hit, fires
// notifications and applies the counter transition. The read-compare-
// increment runs inside a transaction so direct mutators cannot interleave.
// Returns whether the watch is still active afterwards.
func (w *Worker) evaluateWatch(ctx context.Context, watch pricewatchdomain.PriceWatch) (bool, error) {
	if watch.Capped() {
		// A capped watch left active (legacy row, direct mutation) must not
		// fire again; deactivate it without touching the oracle or the sink.
		err := w.db.Transaction(func(tx *gorm.DB) error {
			current, err := w.repo.FindByID(ctx, tx, watch.ID)
			if err != nil {
				return err
			}
			if current == nil || !current.Active {
				return nil
			}
			current.Active = false
			return w.repo.Update(ctx, tx, current)
		})
		return false, err
	}

	price, err := w.currentPrice(ctx, watch.ProductID)
	if err != nil {
		// No observation this sweep; the next one retries.
		return true, err
	}

	if price > watch.TargetPrice {
		err := w.db.Transaction(func(tx *gorm.DB) error {
			current, err := w.repo.FindByID(ctx, tx, watch.ID)
			if err != nil {
				return err
			}
			if current == nil || !current.Active {
				return nil
			}
			current.LastObservedPrice = price
			return w.repo.Update(ctx, tx, current)
		})
		return true, err
	}

	delivered := w.fireNotifications(ctx, watch, price)
	if delivered == 0 {
		// Every send failed; leave the watch untouched for the next sweep.
		return true, errAllSendsFailed
	}

	stillActive := true
	err = w.db.Transaction(func(tx *gorm.DB) error {
		current, err := w.repo.FindByID(ctx, tx, watch.ID)
		if err != nil {
			return err
		}
		if current == nil {
			stillActive = false
			return nil
		}
		if !current.Active || current.Capped() {
			stillActive = current.Active
			return nil
		}

		now := w.clock.Now()
		current.LastObservedPrice = price
		if current.FiredAt == nil {
			current.FiredAt = &now
		}
		current.NotificationsSent++
		if current.Capped() {
			current.Active = false
		}
		stillActive = current.Active
		return w.repo.Update(ctx, tx, current)
	})
	return stillActive, err
}

var errAllSendsFailed = errors.New("all_sends_failed")

// fireNotifications sends one alert per enabled channel and reports how
// many deliveries succeeded.
func (w *Worker) fireNotifications(ctx context.Context, watch pricewatchdomain.PriceWatch, price float64) int {
	payload := map[string]any{
		"product_id":    watch.ProductID,
		"target_price":  watch.TargetPrice,
		"current_price": price,
	}

	channels := make([]notify.Channel, 0, 2)
	if watch.EmailEnabled {
		channels = append(channels, notify.ChannelEmail)
	}
	if watch.PushEnabled {
		channels = append(channels, notify.ChannelPush)
	}

	delivered := 0
	for _, channel := range channels {
		if err := w.sink.Send(ctx, channel, watch.CustomerID, notify.TemplatePriceAlert, payload); err != nil {
			w.log.Warn("price alert send failed",
				zap.String("watch_id", watch.ID.String()),
				zap.String("channel", string(channel)),
				zap.Error(err),
			)
			continue
		}
		w.metrics.PriceAlertFired(string(channel))
		delivered++
	}
	return delivered
}

func (w *Worker) currentPrice(ctx context.Context, productID string) (float64, error) {
	if price, ok := w.prices.Get(productID); ok {
		return price, nil
	}
	price, err := w.oracle.CurrentPrice(ctx, productID)
	if err != nil {
		return 0, err
	}
	w.prices.Put(productID, price)
	return price, nil
}
