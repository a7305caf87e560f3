package main

import (
	"os"

	"github.com/joho/godotenv"

	"finover/internal/calculator"
	"finover/internal/collector"
	"finover/internal/config"
	"finover/internal/pipeline"
	"finover/internal/risk"
	"finover/internal/store"
	"finover/internal/util"
)

// One-shot batch run: fetch the market benchmark and every configured
// symbol, compute features and risk labels, and persist the results.
// Extra command-line arguments override the configured symbol list.
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

	symbols := cfg.Provider.Symbols
	if len(os.Args) > 1 {
		symbols = os.Args[1:]
	}

	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open store")
	}
	defer st.Close()

	p := &pipeline.Pipeline{
		Fetcher: collector.NewFMPFetcher(cfg.Provider.BaseURL, cfg.Provider.APIKey, cfg.Proxy),
		Store:   st,
		Scorer:  risk.NewScorer(cfg.Risk.Thresholds, cfg.Risk.Weights),
		Windows: calculator.Windows{
			SMA:        cfg.Windows.SMA,
			Volatility: cfg.Windows.Volatility,
			RSIPeriod:  cfg.Windows.RSIPeriod,
		},
		MarketSymbol:        cfg.Provider.MarketSymbol,
		MinBetaObservations: cfg.Windows.MinBetaObservations,
		Log:                 logger,
	}

	summary, err := p.RunAll(symbols)
	if err != nil {
		logger.Fatal().Err(err).Msg("pipeline run")
	}
	if len(summary.Failed) > 0 {
		os.Exit(1)
	}
}
