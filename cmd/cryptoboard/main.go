package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CryptoBoard/internal/chart"
	"CryptoBoard/internal/collector"
	"CryptoBoard/internal/config"
	"CryptoBoard/internal/logging"
	"CryptoBoard/internal/model"
	"CryptoBoard/internal/render"
	"CryptoBoard/internal/scheduler"
	"CryptoBoard/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	var (
		cfgPath = flag.String("config", "", "config file path (default $CONFIG_PATH or configs/config.yaml)")
		once    = flag.Bool("once", false, "fetch once, print the board and exit")
		mock    = flag.Bool("mock", false, "use canned data instead of the live providers")
	)
	flag.Parse()

	if err := run(*cfgPath, *once, *mock); err != nil {
		slog.Error("cryptoboard exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfgPath string, once, mock bool) error {
	// Load config
	if cfgPath == "" {
		cfgPath = "configs/config.yaml"
		if v := os.Getenv("CONFIG_PATH"); v != "" {
			cfgPath = v
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("display timezone: %w", err)
	}

	slog.SetDefault(logging.New(cfg))
	slog.Info("cryptoboard starting", slog.String("config", cfgPath), slog.String("timezone", loc.String()))

	// Init fetchers
	var (
		market collector.MarketFetcher
		candle collector.CandleFetcher
	)
	if mock {
		m := &collector.MockFetcher{Samples: collector.MockSamples()}
		market, candle = m, m
	} else {
		market = collector.NewCoinCapFetcher(cfg.Providers.CoinCapURL, cfg.Providers.CoinCapAPIKey, cfg.Proxy)
		candle = collector.NewBinanceFetcher(cfg.Providers.BinanceURL, cfg.Proxy)
	}
	slog.Info("data sources", slog.String("market", market.Name()), slog.String("chart", candle.Name()))
	col := collector.NewCollector(market, candle, model.AssetIDs())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if once {
		return runOnce(ctx, cfg, col, loc)
	}
	return serve(ctx, cfg, col, loc)
}

func runOnce(ctx context.Context, cfg *config.Config, col *collector.Collector, loc *time.Location) error {
	store := render.NewStore()
	r := render.NewRenderer(store, render.WithLocation(loc))
	ch := chart.New(nil)

	sched := scheduler.NewScheduler(ctx, col, r, ch, loc, cfg.Schedule.Overlap)
	marketOK := sched.RunMarketNow()
	chartOK := sched.RunChartNow()

	fmt.Println(render.Terminal(store.Board()))
	if chartOK {
		for _, p := range ch.Points() {
			fmt.Printf("%-6s %s\n", p.Label, p.Close.StringFixed(2))
		}
	}
	if !marketOK {
		return errors.New("market fetch failed")
	}
	return nil
}

func serve(ctx context.Context, cfg *config.Config, col *collector.Collector, loc *time.Location) error {
	gin.SetMode(gin.ReleaseMode)

	hub := server.NewHub(cfg.Server.AllowedOrigins)
	store := render.NewStore()
	r := render.NewRenderer(store, render.WithLocation(loc), render.OnRender(hub.PublishBoard))
	ch := chart.New(hub.PublishChart)

	sched := scheduler.NewScheduler(ctx, col, r, ch, loc, cfg.Schedule.Overlap)
	if err := sched.Register(); err != nil {
		return err
	}

	srv := server.New(cfg, store, ch, hub, col)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	sched.Start()
	slog.Info("cryptoboard is running, press Ctrl+C to stop")

	var serveErr error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received, stopping")
	case serveErr = <-errCh:
		if serveErr != nil {
			serveErr = fmt.Errorf("http server: %w", serveErr)
		}
	}

	sched.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("http shutdown", slog.Any("error", err))
	}
	slog.Info("cryptoboard stopped")
	return serveErr
}
