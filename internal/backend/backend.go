// Package backend assembles the market.Backend the commands talk to.
package backend

import (
	"log/slog"
	"net/http"
	"time"

	"stockdash/internal/config"
	"stockdash/internal/httpx"
	"stockdash/internal/market"
	"stockdash/internal/ratelimit"
	"stockdash/internal/stockapi"
)

// New returns a stock API client for cfg, rate limited when cfg asks for it.
func New(cfg config.Backend, logger *slog.Logger) market.Backend {
	hc := httpx.New(time.Duration(cfg.RequestTimeoutSec) * time.Second)

	header := http.Header{}
	for k, v := range cfg.Headers {
		header.Set(k, v)
	}
	client := stockapi.New(
		stockapi.WithBaseURL(cfg.BaseURL),
		stockapi.WithHTTPClient(hc),
		stockapi.WithHeader(header),
		stockapi.WithLogger(logger),
	)

	if cfg.MaxRequestsPerSec > 0 {
		logger.Debug("rate limiting backend", "per_sec", cfg.MaxRequestsPerSec, "burst", cfg.Burst)
	}
	return ratelimit.Wrap(client, cfg.MaxRequestsPerSec, cfg.Burst)
}
