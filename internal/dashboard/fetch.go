package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"stockdash/internal/market"
)

//go:generate mockgen -package=dashboard_test -destination=mock_backend_test.go stockdash/internal/market Backend

// fanOut calls get once per symbol concurrently. The first error cancels the
// remaining calls and is returned alone: there is no partial result.
func fanOut(ctx context.Context, symbols []string, get func(ctx context.Context, symbol string) (decimal.Decimal, error)) (map[string]decimal.Decimal, error) {
	values := make([]decimal.Decimal, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	for i, sym := range symbols {
		g.Go(func() error {
			v, err := get(gctx, sym)
			if err != nil {
				return fmt.Errorf("%s: %w", sym, err)
			}
			values[i] = v
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	out := make(map[string]decimal.Decimal, len(symbols))
	for i, sym := range symbols {
		out[sym] = values[i]
	}
	return out, nil
}

func fetchPrices(ctx context.Context, b market.Backend, in Inputs) (market.PriceMap, error) {
	return fanOut(ctx, in.Symbols, b.Price)
}

func fetchAverages(ctx context.Context, b market.Backend, in Inputs) (market.AverageMap, error) {
	return fanOut(ctx, in.Symbols, func(ctx context.Context, symbol string) (decimal.Decimal, error) {
		return b.Average(ctx, symbol, in.Days)
	})
}

// fetchHistorical skips the request for an empty symbol set; the backend
// rejects an empty list and there is nothing to chart anyway.
func fetchHistorical(ctx context.Context, b market.Backend, in Inputs) (market.HistoricalMap, error) {
	if len(in.Symbols) == 0 {
		return market.HistoricalMap{}, nil
	}
	return b.Historical(ctx, in.Symbols)
}

// run executes the three sequences of generation gen concurrently and blocks
// until each of them has dispatched its result.
func run(ctx context.Context, b market.Backend, logger *slog.Logger, gen uint64, in Inputs, dispatch func(Event)) {
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		prices, err := fetchPrices(ctx, b, in)
		logFailure(ctx, logger, "prices", gen, err)
		dispatch(PricesFetched{Gen: gen, Prices: prices, Err: err})
	}()
	go func() {
		defer wg.Done()
		hist, err := fetchHistorical(ctx, b, in)
		logFailure(ctx, logger, "historical", gen, err)
		dispatch(HistoricalFetched{Gen: gen, Historical: hist, Err: err})
	}()
	go func() {
		defer wg.Done()
		avgs, err := fetchAverages(ctx, b, in)
		logFailure(ctx, logger, "averages", gen, err)
		dispatch(AveragesFetched{Gen: gen, Averages: avgs, Err: err})
	}()
	wg.Wait()
}

func logFailure(ctx context.Context, logger *slog.Logger, sequence string, gen uint64, err error) {
	if err == nil {
		return
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		// Superseded or shut down; the result is dropped anyway.
		logger.Debug("fetch sequence cancelled", "sequence", sequence, "generation", gen, "err", err)
		return
	}
	logger.Warn("fetch sequence failed", "sequence", sequence, "generation", gen, "err", err)
}

// Load runs a single generation for in and returns the settled state.
func Load(ctx context.Context, b market.Backend, in Inputs, logger *slog.Logger) State {
	if logger == nil {
		logger = slog.Default()
	}
	const gen = 1
	var mu sync.Mutex
	st := Reduce(State{}, Started{Gen: gen, Inputs: in.clone()})
	run(ctx, b, logger, gen, in, func(ev Event) {
		mu.Lock()
		st = Reduce(st, ev)
		mu.Unlock()
	})
	mu.Lock()
	defer mu.Unlock()
	return st
}
