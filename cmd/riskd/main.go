package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"finover/internal/calculator"
	"finover/internal/collector"
	"finover/internal/config"
	"finover/internal/pipeline"
	"finover/internal/predictor"
	"finover/internal/risk"
	"finover/internal/scheduler"
	"finover/internal/server"
	"finover/internal/store"
	"finover/internal/util"
)

func main() {
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fallback := util.NewLogger("info")
		fallback.Fatal().Err(err).Msg("load config")
	}
	logger := util.NewLogger(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config validation")
	}
	logger.Info().Str("config", cfgPath).Msg("riskd starting")

	fetcher := collector.NewFMPFetcher(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Proxy)
	logger.Info().Str("source", fetcher.Name()).Msg("price history provider ready")

	var st store.Store
	if cfg.Database.SQLitePath != "" {
		sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("sqlite store unavailable, persistence disabled")
			st = store.NewNoopStore()
		} else {
			st = sq
			defer sq.Close()
		}
	} else {
		st = store.NewNoopStore()
	}

	scorer := risk.NewScorer(cfg.Risk.Thresholds, cfg.Risk.Weights)

	var pred predictor.Predictor
	if cfg.Models.Dir != "" {
		registry := predictor.NewONNXRegistry(cfg.Models.Dir, logger)
		defer registry.Close()
		pred = registry
	}

	p := &pipeline.Pipeline{
		Fetcher: fetcher,
		Store:   st,
		Scorer:  scorer,
		Windows: calculator.Windows{
			SMA:        cfg.Windows.SMA,
			Volatility: cfg.Windows.Volatility,
			RSIPeriod:  cfg.Windows.RSIPeriod,
		},
		MarketSymbol:        cfg.Provider.MarketSymbol,
		MinBetaObservations: cfg.Windows.MinBetaObservations,
		Log:                 logger,
	}

	sched := scheduler.New(p, cfg.Provider.Symbols, logger)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		logger.Fatal().Err(err).Msg("register cron tasks")
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		logger.Info().Msg("RUN_ON_START enabled, running ingestion now")
		go sched.RunNow()
	}

	srv := server.New(server.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		RecommendLimit: cfg.Server.RecommendLimit,
	}, scorer, pred, st, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server stopped")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("riskd stopped")
}
