package config

import (
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the service configuration loaded from environment variables.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPAddr    string `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"file:cartd.db?_journal_mode=WAL"`

	// SnapshotRequireName rejects saved carts with an empty name when set.
	// The permissive default matches historical behavior.
	SnapshotRequireName bool `env:"SNAPSHOT_REQUIRE_NAME" envDefault:"false"`

	SweepInterval time.Duration `env:"PRICE_SWEEP_INTERVAL" envDefault:"5m"`
	PriceCacheTTL time.Duration `env:"PRICE_CACHE_TTL" envDefault:"30s"`

	RecoveryInitialDelay  time.Duration `env:"RECOVERY_INITIAL_DELAY" envDefault:"1h"`
	RecoveryReminderDelay time.Duration `env:"RECOVERY_REMINDER_DELAY" envDefault:"24h"`
	RecoveryFinalDelay    time.Duration `env:"RECOVERY_FINAL_DELAY" envDefault:"72h"`

	// DiscountCodes is the allow-list for bulk discount application,
	// mapping code to percentage off.
	DiscountCodes map[string]float64 `env:"DISCOUNT_CODES" envSeparator:"," envKeyValSeparator:":" envDefault:"SAVE10:10,SAVE20:20,WELCOME15:15"`
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
