package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"CryptoBoard/internal/chart"
	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/config"
	"CryptoBoard/internal/model"
	"CryptoBoard/internal/render"

	"github.com/shopspring/decimal"
)

type fixture struct {
	mock  *collector.MockFetcher
	store *render.Store
	chart *chart.Chart
	sched *Scheduler
}

func newFixture(t *testing.T, overlap string) *fixture {
	t.Helper()
	mock := &collector.MockFetcher{Samples: []model.MarketSample{{
		ID:                "bitcoin",
		PriceUSD:          decimal.RequireFromString("67890.12"),
		MarketCapUSD:      decimal.RequireFromString("1234000000000"),
		ChangePercent24Hr: decimal.RequireFromString("2.5"),
	}}}
	store := render.NewStore()
	ch := chart.New(nil)
	col := collector.NewCollector(mock, mock, model.AssetIDs())
	r := render.NewRenderer(store, render.WithLocation(time.UTC))
	s := NewScheduler(context.Background(), col, r, ch, time.UTC, overlap)
	return &fixture{mock: mock, store: store, chart: ch, sched: s}
}

func TestRunMarketNow_RendersBoard(t *testing.T) {
	f := newFixture(t, config.OverlapAllow)
	if !f.sched.RunMarketNow() {
		t.Fatal("expected market cycle to render")
	}
	b := f.store.Board()
	if len(b.Rows) != 1 || b.Rows[0].Price != "$67890" {
		t.Errorf("unexpected board %+v", b)
	}
}

func TestRunMarketNow_FailureKeepsPreviousBoard(t *testing.T) {
	f := newFixture(t, config.OverlapAllow)
	f.sched.RunMarketNow()
	before := f.store.Board()

	f.mock.SetMarket(nil, errors.New("connection reset"))
	if f.sched.RunMarketNow() {
		t.Fatal("failed fetch should not render")
	}
	after := f.store.Board()
	if after.Timestamp != before.Timestamp || len(after.Rows) != len(before.Rows) || after.Rows[0] != before.Rows[0] {
		t.Errorf("board changed after failed fetch: before=%+v after=%+v", before, after)
	}

	// The next cycle still works.
	f.mock.SetMarket([]model.MarketSample{{ID: "ripple", PriceUSD: decimal.RequireFromString("0.5")}}, nil)
	if !f.sched.RunMarketNow() {
		t.Fatal("expected recovery on next cycle")
	}
	if got := f.store.Board(); len(got.Rows) != 1 || got.Rows[0].ID != "ripple" {
		t.Errorf("unexpected board after recovery %+v", got.Rows)
	}
}

func TestRunChartNow(t *testing.T) {
	f := newFixture(t, config.OverlapAllow)
	if !f.sched.RunChartNow() {
		t.Fatal("expected chart to be drawn")
	}
	if len(f.chart.Points()) != collector.ChartDays {
		t.Errorf("expected %d points, got %d", collector.ChartDays, len(f.chart.Points()))
	}

	f.mock.CandleErr = errors.New("bad gateway")
	if f.sched.RunChartNow() {
		t.Error("chart failure should not draw")
	}
	if f.chart.Revision() != 1 {
		t.Errorf("failed chart cycle must leave chart untouched, revision=%d", f.chart.Revision())
	}
}

func TestStart_FiresBothTimelinesImmediately(t *testing.T) {
	f := newFixture(t, config.OverlapAllow)
	if err := f.sched.Register(); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	f.sched.Start()
	defer f.sched.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !f.store.Board().Empty() && f.chart.Drawn() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if f.store.Board().Empty() {
		t.Error("market cycle did not run on start")
	}
	if !f.chart.Drawn() {
		t.Error("chart cycle did not run on start")
	}
	if entries := f.sched.Cron.Entries(); len(entries) != 1 {
		t.Errorf("expected only the market timeline in cron, got %d entries", len(entries))
	}
}

func TestStop_CancelsInFlightFetch(t *testing.T) {
	f := newFixture(t, config.OverlapAllow)
	f.mock.Delay = time.Minute
	f.sched.Start()

	time.Sleep(20 * time.Millisecond)
	done := make(chan struct{})
	go func() {
		f.sched.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while a fetch was in flight")
	}
}

func runOverlapping(f *fixture) {
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		f.sched.marketJob.Run()
	}()
	time.Sleep(30 * time.Millisecond)
	go func() {
		defer wg.Done()
		f.sched.marketJob.Run()
	}()
	wg.Wait()
}

func TestOverlapPolicy(t *testing.T) {
	tests := []struct {
		overlap string
		calls   int
	}{
		{config.OverlapAllow, 2},
		{config.OverlapSkip, 1},
	}
	for _, tt := range tests {
		t.Run(tt.overlap, func(t *testing.T) {
			f := newFixture(t, tt.overlap)
			f.mock.Delay = 150 * time.Millisecond
			runOverlapping(f)
			if market, _ := f.mock.Calls(); market != tt.calls {
				t.Errorf("expected %d market fetches, got %d", tt.calls, market)
			}
		})
	}
}
