package collector

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"CryptoBoard/internal/model"

	"github.com/shopspring/decimal"
)

// Fixed chart source: seven daily BTC/USDT candles.
const (
	ChartSymbol = "BTCUSDT"
	ChartDays   = 7
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	mu        sync.Mutex
	Samples   []model.MarketSample
	Candles   []model.Candle
	MarketErr error
	CandleErr error
	Delay     time.Duration

	marketCalls int
	candleCalls int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchAssets(ctx context.Context, _ []string) ([]model.MarketSample, error) {
	m.mu.Lock()
	m.marketCalls++
	samples, err, delay := m.Samples, m.MarketErr, m.Delay
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
	if err != nil {
		return nil, err
	}
	out := make([]model.MarketSample, len(samples))
	copy(out, samples)
	return out, nil
}

func (m *MockFetcher) FetchDailyCandles(_ context.Context, _ string, limit int) ([]model.Candle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.candleCalls++
	if m.CandleErr != nil {
		return nil, m.CandleErr
	}
	if m.Candles != nil {
		return m.Candles, nil
	}
	return generateMockCandles(limit), nil
}

// SetMarket swaps the canned market response.
func (m *MockFetcher) SetMarket(samples []model.MarketSample, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Samples = samples
	m.MarketErr = err
}

// Calls reports how many market and candle fetches were made.
func (m *MockFetcher) Calls() (market, candle int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.marketCalls, m.candleCalls
}

func generateMockCandles(count int) []model.Candle {
	candles := make([]model.Candle, count)
	day := time.Now().Truncate(24 * time.Hour)
	for i := 0; i < count; i++ {
		candles[i] = model.Candle{
			OpenTime: day.AddDate(0, 0, -(count - 1 - i)),
			Close:    decimal.NewFromInt(60000).Add(decimal.NewFromInt(int64(i * 250))),
		}
	}
	return candles
}

// MockSamples returns a plausible snapshot of every tracked asset.
func MockSamples() []model.MarketSample {
	rows := []struct{ id, price, cap, change string }{
		{"bitcoin", "67890.12", "1337000000000", "2.31"},
		{"ethereum", "3456.78", "415000000000", "-1.05"},
		{"binancecoin", "589.4", "86000000000", "0.42"},
		{"ripple", "0.5231", "29000000000", "-3.7"},
		{"dogecoin", "0.1532", "22000000000", "5.12"},
		{"tether", "1.0001", "112000000000", "0.01"},
		{"usd-coin", "0.9998", "33000000000", "-0.02"},
	}
	out := make([]model.MarketSample, len(rows))
	for i, r := range rows {
		out[i] = model.MarketSample{
			ID:                r.id,
			PriceUSD:          decimal.RequireFromString(r.price),
			MarketCapUSD:      decimal.RequireFromString(r.cap),
			ChangePercent24Hr: decimal.RequireFromString(r.change),
		}
	}
	return out
}

// Stats is a point-in-time view of fetch outcomes.
type Stats struct {
	MarketOK     uint64    `json:"market_ok"`
	MarketFailed uint64    `json:"market_failed"`
	ChartOK      uint64    `json:"chart_ok"`
	ChartFailed  uint64    `json:"chart_failed"`
	LastMarketOK time.Time `json:"last_market_ok"`
}

// Collector is the failure boundary between providers and rendering: every
// error is logged here and turned into a "no data" result.
type Collector struct {
	Market MarketFetcher
	Candle CandleFetcher
	IDs    []string

	marketOK     atomic.Uint64
	marketFailed atomic.Uint64
	chartOK      atomic.Uint64
	chartFailed  atomic.Uint64
	lastMarketOK atomic.Int64
}

// NewCollector creates a Collector for the tracked asset ids.
func NewCollector(market MarketFetcher, candle CandleFetcher, ids []string) *Collector {
	return &Collector{Market: market, Candle: candle, IDs: ids}
}

// CollectMarket fetches the current samples. ok is false when the cycle
// should be skipped; the cause has already been logged.
func (c *Collector) CollectMarket(ctx context.Context) (samples []model.MarketSample, ok bool) {
	samples, err := c.Market.FetchAssets(ctx, c.IDs)
	if err != nil {
		c.marketFailed.Add(1)
		logFailure(ctx, "market data fetch failed", c.Market.Name(), err)
		return nil, false
	}
	c.marketOK.Add(1)
	c.lastMarketOK.Store(time.Now().UnixNano())
	return samples, true
}

// CollectChart fetches the chart series and labels it in loc. ok is false
// when the chart should not be drawn this cycle.
func (c *Collector) CollectChart(ctx context.Context, loc *time.Location) (points []model.ChartPoint, ok bool) {
	candles, err := c.Candle.FetchDailyCandles(ctx, ChartSymbol, ChartDays)
	if err != nil {
		c.chartFailed.Add(1)
		logFailure(ctx, "chart data fetch failed", c.Candle.Name(), err)
		return nil, false
	}
	c.chartOK.Add(1)
	return model.PointsFromCandles(candles, loc), true
}

// Stats returns the current fetch counters.
func (c *Collector) Stats() Stats {
	s := Stats{
		MarketOK:     c.marketOK.Load(),
		MarketFailed: c.marketFailed.Load(),
		ChartOK:      c.chartOK.Load(),
		ChartFailed:  c.chartFailed.Load(),
	}
	if ns := c.lastMarketOK.Load(); ns != 0 {
		s.LastMarketOK = time.Unix(0, ns)
	}
	return s
}

func logFailure(ctx context.Context, msg, provider string, err error) {
	if errors.Is(err, context.Canceled) {
		slog.DebugContext(ctx, msg, slog.String("provider", provider), slog.Any("error", err))
		return
	}
	slog.WarnContext(ctx, msg, slog.String("provider", provider), slog.Any("error", err))
}
