package oracle

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/fx"
)

// ErrNoPrice signals a product with no current price observation.
var ErrNoPrice = errors.New("no_price")

// PriceOracle supplies a product's current price. A lookup error means
// "no observation this sweep", never a hard failure.
type PriceOracle interface {
	CurrentPrice(ctx context.Context, productID string) (float64, error)
}

// StaticOracle serves prices from an in-memory table. It backs development
// and tests; production wires a real price feed behind the same interface.
type StaticOracle struct {
	mu     sync.RWMutex
	prices map[string]float64
}

func NewStaticOracle() *StaticOracle {
	return &StaticOracle{prices: make(map[string]float64)}
}

func (o *StaticOracle) SetPrice(productID string, price float64) {
	o.mu.Lock()
	o.prices[productID] = price
	o.mu.Unlock()
}

func (o *StaticOracle) CurrentPrice(_ context.Context, productID string) (float64, error) {
	o.mu.RLock()
	price, ok := o.prices[productID]
	o.mu.RUnlock()
	if !ok {
		return 0, ErrNoPrice
	}
	return price, nil
}

var Module = fx.Module("oracle",
	fx.Provide(func() PriceOracle {
		return NewStaticOracle()
	}),
)
