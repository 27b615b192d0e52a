package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Config labels every metric with the emitting service and environment.
type Config struct {
	ServiceName string
	Environment string
}

// EngagementMetrics covers the two background activities: the price sweep
// and the abandonment recovery stages.
type EngagementMetrics struct {
	sweepRuns          prometheus.Counter
	sweepErrors        prometheus.Counter
	priceAlertsFired   *prometheus.CounterVec
	activeWatches      prometheus.Gauge
	recoveryStagesSent *prometheus.CounterVec
}

var (
	engagementOnce    sync.Once
	engagementMetrics *EngagementMetrics
)

// Engagement returns the process-wide metrics set, registering on first use.
func Engagement() *EngagementMetrics {
	return EngagementWithConfig(Config{})
}

func EngagementWithConfig(cfg Config) *EngagementMetrics {
	engagementOnce.Do(func() {
		engagementMetrics = newEngagementMetrics(prometheus.DefaultRegisterer, cfg)
	})
	return engagementMetrics
}

// ResetEngagementMetricsForTest clears the singleton between test registries.
func ResetEngagementMetricsForTest() {
	engagementOnce = sync.Once{}
	engagementMetrics = nil
}

func newEngagementMetrics(registerer prometheus.Registerer, cfg Config) *EngagementMetrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "cartd"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}

	constLabels := prometheus.Labels{
		"service": serviceName,
		"env":     environment,
	}

	m := &EngagementMetrics{
		sweepRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "price_sweep_runs_total",
			Help:        "Completed price sweep iterations.",
			ConstLabels: constLabels,
		}),
		sweepErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "price_sweep_errors_total",
			Help:        "Watches skipped during a sweep due to oracle or send failures.",
			ConstLabels: constLabels,
		}),
		priceAlertsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "price_alert_notifications_total",
			Help:        "Price alert notifications fired, by channel.",
			ConstLabels: constLabels,
		}, []string{"channel"}),
		activeWatches: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "price_watches_active",
			Help:        "Active price watches at the end of the last sweep.",
			ConstLabels: constLabels,
		}),
		recoveryStagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "recovery_notifications_total",
			Help:        "Abandonment recovery notifications sent, by stage.",
			ConstLabels: constLabels,
		}, []string{"stage"}),
	}

	registerer.MustRegister(
		m.sweepRuns,
		m.sweepErrors,
		m.priceAlertsFired,
		m.activeWatches,
		m.recoveryStagesSent,
	)
	return m
}

func (m *EngagementMetrics) SweepRun() {
	if m == nil {
		return
	}
	m.sweepRuns.Inc()
}

func (m *EngagementMetrics) SweepError() {
	if m == nil {
		return
	}
	m.sweepErrors.Inc()
}

func (m *EngagementMetrics) PriceAlertFired(channel string) {
	if m == nil {
		return
	}
	m.priceAlertsFired.WithLabelValues(channel).Inc()
}

func (m *EngagementMetrics) SetActiveWatches(n int) {
	if m == nil {
		return
	}
	m.activeWatches.Set(float64(n))
}

func (m *EngagementMetrics) RecoveryStageSent(stage string) {
	if m == nil {
		return
	}
	m.recoveryStagesSent.WithLabelValues(stage).Inc()
}
