package sweep

import "time"

// Config controls the price sweep loop.
type Config struct {
	Interval      time.Duration
	PriceCacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		Interval:      5 * time.Minute,
		PriceCacheTTL: 30 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = defaults.Interval
	}
	if c.PriceCacheTTL < 0 {
		c.PriceCacheTTL = defaults.PriceCacheTTL
	}
	return c
}
