package config

import (
	"fmt"
	"strings"

	"github.com/SscSPs/tab_buddy/internal/apperrors"
	"github.com/SscSPs/tab_buddy/pkg/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Ledger strategies for member summaries.
const (
	LedgerStrategyFold  = "fold"  // one DebtLedger fold per member
	LedgerStrategySheet = "sheet" // one incrementally built balance sheet
)

// Config holds application configuration.
type Config struct {
	LogLevel       string
	LogFormat      string
	SnapshotPath   string
	LedgerStrategy string
	SummaryWorkers int
}

// LoadConfig loads configuration from environment variables, a .env file and,
// when TABBUDDY_CONFIG names one, a config file in any format viper reads.
// Environment variables win over the file, which wins over defaults.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", logging.FormatText)
	v.SetDefault("SNAPSHOT_PATH", "./tabbuddy.json")
	v.SetDefault("LEDGER_STRATEGY", LedgerStrategyFold)
	v.SetDefault("SUMMARY_WORKERS", 4)

	v.AutomaticEnv()

	if path := v.GetString("TABBUDDY_CONFIG"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg := &Config{
		LogLevel:       v.GetString("LOG_LEVEL"),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		SnapshotPath:   v.GetString("SNAPSHOT_PATH"),
		LedgerStrategy: strings.ToLower(v.GetString("LEDGER_STRATEGY")),
		SummaryWorkers: v.GetInt("SUMMARY_WORKERS"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have a closed set of options.
func (c *Config) Validate() error {
	switch c.LedgerStrategy {
	case LedgerStrategyFold, LedgerStrategySheet:
	default:
		return fmt.Errorf("%w: LEDGER_STRATEGY must be %q or %q, got %q",
			apperrors.ErrValidation, LedgerStrategyFold, LedgerStrategySheet, c.LedgerStrategy)
	}
	switch c.LogFormat {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("%w: LOG_FORMAT must be text or json, got %q", apperrors.ErrValidation, c.LogFormat)
	}
	if c.SummaryWorkers <= 0 {
		return fmt.Errorf("%w: SUMMARY_WORKERS must be positive, got %d", apperrors.ErrValidation, c.SummaryWorkers)
	}
	if c.SnapshotPath == "" {
		return fmt.Errorf("%w: SNAPSHOT_PATH is empty", apperrors.ErrValidation)
	}
	return nil
}
