// Package config loads the shop configuration from an optional YAML file and
// applies environment overrides.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/kirana/internal/promotion"
)

// Store kinds.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

// Languages offered by the menu.
const (
	LanguageEnglish = "en"
	LanguageMarathi = "mr"
)

// Config is the runtime configuration.
type Config struct {
	// DataPath is the ledger file (JSON) or database (SQLite).
	DataPath string `yaml:"data_path"`

	// Store selects the backend: json, sqlite or memory (nothing persisted).
	Store string `yaml:"store"`

	// MetricsPath, when set, receives a Prometheus textfile on exit.
	MetricsPath string `yaml:"metrics_path"`

	LogLevel string `yaml:"log_level"`

	// Language is the menu language at start-up: en or mr.
	Language string `yaml:"language"`

	// CurrencyPlaces is the rounding of bill amounts (2 for paise).
	CurrencyPlaces int32 `yaml:"currency_places"`

	// TaxBands lists the usual GST rates. Advisory: other rates are accepted.
	TaxBands []string `yaml:"tax_bands"`

	// Promotions are tried in order; the first one that discounts wins.
	// Omitted means the default Gudi Padwa rule; an empty list disables
	// discounts.
	Promotions []promotion.Spec `yaml:"promotions"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DataPath:       "kirana_data.json",
		Store:          StoreJSON,
		LogLevel:       "info",
		Language:       LanguageEnglish,
		CurrencyPlaces: 2,
		TaxBands:       []string{"0", "5", "12", "18", "28"},
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads path (skipped when empty), fills defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		cfg, err = Parse(data)
		if err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataPath = getEnv("KIRANA_DATA_PATH", c.DataPath)
	c.Store = getEnv("KIRANA_STORE", c.Store)
	c.MetricsPath = getEnv("KIRANA_METRICS_PATH", c.MetricsPath)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.Language = getEnv("KIRANA_LANGUAGE", c.Language)
}

// Validate checks the store kind, language, rounding and promotion list.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	switch c.Store {
	case StoreJSON, StoreSQLite:
		if strings.TrimSpace(c.DataPath) == "" {
			return fmt.Errorf("data_path is required for the %s store", c.Store)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q (want json, sqlite or memory)", c.Store)
	}

	c.Language = strings.ToLower(strings.TrimSpace(c.Language))
	if c.Language != LanguageEnglish && c.Language != LanguageMarathi {
		return fmt.Errorf("unknown language %q (want en or mr)", c.Language)
	}

	if c.CurrencyPlaces < 0 || c.CurrencyPlaces > 4 {
		return fmt.Errorf("currency_places must be between 0 and 4, got %d", c.CurrencyPlaces)
	}

	if _, err := c.Bands(); err != nil {
		return err
	}
	if _, err := c.PromotionRule(); err != nil {
		return err
	}
	return nil
}

// Bands returns TaxBands as decimals.
func (c *Config) Bands() ([]decimal.Decimal, error) {
	bands := make([]decimal.Decimal, 0, len(c.TaxBands))
	for _, raw := range c.TaxBands {
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid tax band %q: %w", raw, err)
		}
		bands = append(bands, d)
	}
	return bands, nil
}

// PromotionRule builds the configured discount rule.
func (c *Config) PromotionRule() (promotion.Rule, error) {
	specs := c.Promotions
	if specs == nil {
		specs = promotion.DefaultSpecs()
	}
	rule, err := promotion.Build(specs)
	if err != nil {
		return nil, fmt.Errorf("invalid promotions: %w", err)
	}
	return rule, nil
}
