package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"CryptoBoard/internal/model"

	"github.com/shopspring/decimal"
)

// DefaultBinanceURL is the public Binance spot REST root.
const DefaultBinanceURL = "https://api.binance.com"

// Kline row layout: [openTime, open, high, low, close, volume, ...].
const (
	klineOpenTime = 0
	klineClose    = 4
)

// BinanceFetcher implements CandleFetcher using the Binance klines endpoint.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(baseURL, proxyURL string) *BinanceFetcher {
	if baseURL == "" {
		baseURL = DefaultBinanceURL
	}
	return &BinanceFetcher{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// FetchDailyCandles returns the last limit daily candles of symbol, keeping
// only open time and close price. Any malformed row fails the whole call.
func (f *BinanceFetcher) FetchDailyCandles(ctx context.Context, symbol string, limit int) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1d&limit=%d", f.BaseURL, symbol, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("binance fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("binance read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &ProviderError{Provider: f.Name(), StatusCode: resp.StatusCode, Message: string(body)}
	}

	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("binance decode: %w", err)
	}
	return parseKlines(rows)
}

func parseKlines(rows [][]json.RawMessage) ([]model.Candle, error) {
	candles := make([]model.Candle, 0, len(rows))
	for i, row := range rows {
		if len(row) <= klineClose {
			return nil, fmt.Errorf("kline row %d: expected at least %d fields, got %d", i, klineClose+1, len(row))
		}
		var openMs int64
		if err := json.Unmarshal(row[klineOpenTime], &openMs); err != nil {
			return nil, fmt.Errorf("kline row %d open time: %w", i, err)
		}
		var closePrice decimal.Decimal
		if err := json.Unmarshal(row[klineClose], &closePrice); err != nil {
			return nil, fmt.Errorf("kline row %d close: %w", i, err)
		}
		candles = append(candles, model.Candle{
			OpenTime: time.UnixMilli(openMs),
			Close:    closePrice,
		})
	}
	return candles, nil
}
