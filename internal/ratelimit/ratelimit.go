// Package ratelimit bounds how fast a market.Backend is called.
// A dashboard refresh fans out one request per symbol, twice, so a long
// symbol list would otherwise hit the backend all at once.
package ratelimit

import (
	"context"

	"github.com/shopspring/decimal"
	"stockdash/internal/market"
)

// Backend wraps a market.Backend and admits each request through L.
type Backend struct {
	B market.Backend
	L *Limiter
}

// Wrap returns b unchanged when perSecond is not positive.
func Wrap(b market.Backend, perSecond float64, burst int) market.Backend {
	if perSecond <= 0 {
		return b
	}
	return &Backend{B: b, L: NewLimiter(perSecond, burst)}
}

func (l *Backend) wait(ctx context.Context) error {
	if l.L == nil {
		return nil
	}
	return l.L.Wait(ctx)
}

func (l *Backend) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	if err := l.wait(ctx); err != nil {
		return decimal.Zero, err
	}
	return l.B.Price(ctx, symbol)
}

func (l *Backend) Average(ctx context.Context, symbol string, days string) (decimal.Decimal, error) {
	if err := l.wait(ctx); err != nil {
		return decimal.Zero, err
	}
	return l.B.Average(ctx, symbol, days)
}

func (l *Backend) Historical(ctx context.Context, symbols []string) (market.HistoricalMap, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.B.Historical(ctx, symbols)
}
