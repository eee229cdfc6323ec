package collector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"CryptoBoard/internal/model"
)

// MarketFetcher reads the current market snapshot for a set of assets.
type MarketFetcher interface {
	FetchAssets(ctx context.Context, ids []string) ([]model.MarketSample, error)
	Name() string
}

// CandleFetcher reads daily candlesticks for one trading pair.
type CandleFetcher interface {
	FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]model.Candle, error)
	Name() string
}

// ProviderError is returned when a provider answers but reports a failure.
type ProviderError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
