package clock

import (
	"time"

	"go.uber.org/fx"
)

// Clock abstracts time for services that stamp records.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock in UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time { return f.At }

var Module = fx.Module("clock",
	fx.Provide(func() Clock {
		return SystemClock{}
	}),
)
