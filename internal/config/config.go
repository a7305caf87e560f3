package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"finover/internal/calculator"
	"finover/internal/risk"
)

// Config holds all application configuration.
type Config struct {
	Provider struct {
		BaseURL      string   `yaml:"base_url"`
		APIKey       string   `yaml:"api_key"`
		MarketSymbol string   `yaml:"market_symbol"`
		Symbols      []string `yaml:"symbols"`
	} `yaml:"provider"`
	Windows struct {
		SMA                 int `yaml:"sma"`
		Volatility          int `yaml:"volatility"`
		RSIPeriod           int `yaml:"rsi_period"`
		MinBetaObservations int `yaml:"min_beta_observations"`
	} `yaml:"windows"`
	Risk struct {
		Thresholds risk.Thresholds `yaml:"thresholds"`
		Weights    risk.Weights    `yaml:"weights"`
	} `yaml:"risk"`
	Server struct {
		Host           string `yaml:"host"`
		Port           int    `yaml:"port"`
		RecommendLimit int    `yaml:"recommend_limit"`
	} `yaml:"server"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Models struct {
		Dir string `yaml:"dir"`
	} `yaml:"models"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FMP_BASE_URL"); v != "" {
		cfg.Provider.BaseURL = v
	}
	if v := os.Getenv("FMP_API_KEY"); v != "" {
		cfg.Provider.APIKey = v
	}
	if v := os.Getenv("MARKET_SYMBOL"); v != "" {
		cfg.Provider.MarketSymbol = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MODELS_DIR"); v != "" {
		cfg.Models.Dir = v
	}
	if v := os.Getenv("HTTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = p
		}
	}
	if v := os.Getenv("DAILY_CRON"); v != "" {
		cfg.Schedule.DailyCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Provider.BaseURL == "" {
		cfg.Provider.BaseURL = "https://financialmodelingprep.com"
	}
	if cfg.Provider.MarketSymbol == "" {
		cfg.Provider.MarketSymbol = "SPY"
	}
	if len(cfg.Provider.Symbols) == 0 {
		cfg.Provider.Symbols = []string{"AAPL", "MSFT", "AMZN", "NVDA", "TSLA", "GOOG", "META"}
	}
	if cfg.Windows.SMA == 0 {
		cfg.Windows.SMA = calculator.DefaultWindow
	}
	if cfg.Windows.Volatility == 0 {
		cfg.Windows.Volatility = calculator.DefaultWindow
	}
	if cfg.Windows.RSIPeriod == 0 {
		cfg.Windows.RSIPeriod = calculator.DefaultRSIPeriod
	}
	if cfg.Windows.MinBetaObservations == 0 {
		cfg.Windows.MinBetaObservations = calculator.DefaultMinBetaObservations
	}
	if cfg.Risk.Thresholds == (risk.Thresholds{}) {
		cfg.Risk.Thresholds = risk.DefaultThresholds()
	}
	if cfg.Risk.Weights == (risk.Weights{}) {
		cfg.Risk.Weights = risk.DefaultWeights()
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5050
	}
	if cfg.Server.RecommendLimit == 0 {
		cfg.Server.RecommendLimit = 5
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/finover.db"
	}
	if cfg.Models.Dir == "" {
		cfg.Models.Dir = "data/models"
	}
	if cfg.Schedule.DailyCron == "" {
		cfg.Schedule.DailyCron = "0 0 22 * * 1-5"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Provider.APIKey == "" {
		return fmt.Errorf("provider.api_key is required")
	}
	if len(c.Provider.Symbols) == 0 {
		return fmt.Errorf("provider.symbols must not be empty")
	}
	t := c.Risk.Thresholds
	if t.VolatilityHigh <= t.VolatilityMedium {
		return fmt.Errorf("risk.thresholds: volatility_high must exceed volatility_medium")
	}
	if t.BetaHigh <= t.BetaLow {
		return fmt.Errorf("risk.thresholds: beta_high must exceed beta_low")
	}
	w := c.Risk.Weights
	if w.Volatility < 0 || w.Beta < 0 || w.RSI < 0 {
		return fmt.Errorf("risk.weights must be non-negative")
	}
	if sum := w.Volatility + w.Beta + w.RSI; sum > 1 {
		return fmt.Errorf("risk.weights must sum to at most 1, got %.3f", sum)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}
