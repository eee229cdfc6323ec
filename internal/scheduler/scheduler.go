package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"CryptoBoard/internal/chart"
	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/config"
	"CryptoBoard/internal/logging"
	"CryptoBoard/internal/render"

	"github.com/robfig/cron/v3"
)

// MarketInterval is the fixed period of the market timeline.
const MarketInterval = 10 * time.Second

// Scheduler drives the two timelines: the market list refreshes every
// MarketInterval, the chart is drawn once at start.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Renderer  *render.Renderer
	Chart     *chart.Chart
	Location  *time.Location

	ctx       context.Context
	cancel    context.CancelFunc
	marketJob cron.Job
	wg        sync.WaitGroup
}

// NewScheduler creates a Scheduler. overlap is config.OverlapAllow (cycles
// may run concurrently, last render wins) or config.OverlapSkip (a tick is
// dropped while the previous market cycle is still running).
func NewScheduler(ctx context.Context, col *collector.Collector, r *render.Renderer, ch *chart.Chart, loc *time.Location, overlap string) *Scheduler {
	logger := logging.CronLogger{Logger: slog.Default()}
	wrappers := []cron.JobWrapper{cron.Recover(logger)}
	if overlap == config.OverlapSkip {
		wrappers = append(wrappers, cron.SkipIfStillRunning(logger))
	}

	ctx, cancel := context.WithCancel(ctx)
	s := &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLogger(logger)),
		Collector: col,
		Renderer:  r,
		Chart:     ch,
		Location:  loc,
		ctx:       ctx,
		cancel:    cancel,
	}
	s.marketJob = cron.NewChain(wrappers...).Then(cron.FuncJob(func() { s.marketCycle() }))
	return s
}

// Register adds the market timeline to cron.
func (s *Scheduler) Register() error {
	spec := fmt.Sprintf("@every %s", MarketInterval)
	if _, err := s.Cron.AddJob(spec, s.marketJob); err != nil {
		return fmt.Errorf("register market task: %w", err)
	}
	return nil
}

// Start fires the market and chart cycles immediately, then starts cron.
func (s *Scheduler) Start() {
	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		s.marketJob.Run()
	}()
	go func() {
		defer s.wg.Done()
		s.chartCycle()
	}()
	s.Cron.Start()
	slog.Info("scheduler started", slog.Duration("market_interval", MarketInterval))
}

// Stop cancels in-flight requests and waits for running cycles to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.Cron.Stop().Done()
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

// RunMarketNow runs one market cycle synchronously and reports whether the
// board was re-rendered.
func (s *Scheduler) RunMarketNow() bool {
	return s.marketCycle()
}

// RunChartNow runs one chart cycle synchronously and reports whether the
// chart was drawn.
func (s *Scheduler) RunChartNow() bool {
	return s.chartCycle()
}

func (s *Scheduler) marketCycle() bool {
	samples, ok := s.Collector.CollectMarket(s.ctx)
	if !ok {
		return false
	}
	board := s.Renderer.Render(samples)
	slog.Debug("market rendered", slog.Int("rows", len(board.Rows)), slog.String("timestamp", board.Timestamp))
	return true
}

func (s *Scheduler) chartCycle() bool {
	points, ok := s.Collector.CollectChart(s.ctx, s.Location)
	if !ok {
		return false
	}
	s.Chart.Draw(points)
	slog.Info("chart drawn", slog.Int("points", len(points)))
	return true
}
