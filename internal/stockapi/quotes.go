package stockapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
	"stockdash/internal/market"
)

type priceResponse struct {
	Price *amount `json:"price"`
}

type averageResponse struct {
	AveragePrice *amount `json:"average_price"`
}

type historicalRequest struct {
	Symbols []string `json:"symbols"`
}

// Price returns the latest price of symbol. The backend may send the price
// as scraped text ("$182.52"); currency signs and thousands separators are
// stripped.
// GET /api/stocks/{symbol}
func (c *Client) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	var out priceResponse
	path := "/api/stocks/" + url.PathEscape(symbol)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return decimal.Zero, err
	}
	if out.Price == nil {
		return decimal.Zero, fmt.Errorf("price for %s: %w", symbol, ErrMissingField)
	}
	return out.Price.Decimal, nil
}

// Average returns the average price of symbol over the last days days.
// days is sent verbatim; the backend decides what it accepts.
// GET /api/average/{symbol}?days={days}
func (c *Client) Average(ctx context.Context, symbol string, days string) (decimal.Decimal, error) {
	var out averageResponse
	query := url.Values{}
	query.Set("days", days)
	path := "/api/average/" + url.PathEscape(symbol) + "?" + query.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return decimal.Zero, err
	}
	if out.AveragePrice == nil {
		return decimal.Zero, fmt.Errorf("average_price for %s: %w", symbol, ErrMissingField)
	}
	return out.AveragePrice.Decimal, nil
}

// Historical returns the close series of every symbol in one batched call.
// POST /api/historical/multiple
//
// The backend reports a per-symbol failure inline as an object instead of a
// point list, or as null; such entries are left out of the result.
func (c *Client) Historical(ctx context.Context, symbols []string) (market.HistoricalMap, error) {
	body, err := json.Marshal(historicalRequest{Symbols: symbols})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var raw map[string]json.RawMessage
	if err := c.doJSON(ctx, http.MethodPost, "/api/historical/multiple", body, &raw); err != nil {
		return nil, err
	}

	out := make(market.HistoricalMap, len(raw))
	for symbol, entry := range raw {
		if bytes.Equal(bytes.TrimSpace(entry), []byte("null")) {
			c.logger.Debug("no historical data", "symbol", symbol)
			continue
		}
		var points []market.Point
		if err := json.Unmarshal(entry, &points); err != nil {
			c.logger.Warn("skipping historical entry", "symbol", symbol, "entry", truncate(entry, 256), "err", err)
			continue
		}
		out[symbol] = points
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return newAPIError(method, path, res.StatusCode, res.Body)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", path, err)
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
