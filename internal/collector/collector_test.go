package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	"CryptoBoard/internal/model"

	"github.com/shopspring/decimal"
)

func TestCollector_CollectMarket(t *testing.T) {
	mock := &MockFetcher{Samples: []model.MarketSample{
		{ID: "bitcoin", PriceUSD: decimal.NewFromInt(1)},
	}}
	c := NewCollector(mock, mock, model.AssetIDs())

	samples, ok := c.CollectMarket(context.Background())
	if !ok || len(samples) != 1 {
		t.Fatalf("expected one sample, got ok=%v len=%d", ok, len(samples))
	}

	mock.SetMarket(nil, errors.New("network down"))
	samples, ok = c.CollectMarket(context.Background())
	if ok || samples != nil {
		t.Errorf("expected no data on failure, got ok=%v samples=%v", ok, samples)
	}

	st := c.Stats()
	if st.MarketOK != 1 || st.MarketFailed != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
	if st.LastMarketOK.IsZero() {
		t.Error("expected last success time to be set")
	}
}

func TestCollector_CollectChart(t *testing.T) {
	mock := &MockFetcher{}
	c := NewCollector(mock, mock, model.AssetIDs())

	points, ok := c.CollectChart(context.Background(), time.UTC)
	if !ok {
		t.Fatal("expected chart data")
	}
	if len(points) != ChartDays {
		t.Errorf("expected %d points, got %d", ChartDays, len(points))
	}
	for _, p := range points {
		if p.Label == "" {
			t.Error("point missing label")
		}
	}

	mock.CandleErr = errors.New("bad gateway")
	if points, ok := c.CollectChart(context.Background(), time.UTC); ok || points != nil {
		t.Error("expected chart failure to yield no points")
	}
	if st := c.Stats(); st.ChartOK != 1 || st.ChartFailed != 1 {
		t.Errorf("unexpected stats: %+v", st)
	}
}
