package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/kirana/internal/promotion"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"KIRANA_DATA_PATH", "KIRANA_STORE", "KIRANA_METRICS_PATH", "LOG_LEVEL", "KIRANA_LANGUAGE"} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kirana.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "kirana_data.json", cfg.DataPath)
	assert.Equal(t, StoreJSON, cfg.Store)
	assert.Equal(t, LanguageEnglish, cfg.Language)
	assert.Equal(t, int32(2), cfg.CurrencyPlaces)

	rule, err := cfg.PromotionRule()
	require.NoError(t, err)
	padwa := time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC)
	assert.True(t, rule.Evaluate(padwa, decimal.NewFromInt(1000)).Equal(decimal.NewFromInt(100)))
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
data_path: /var/lib/kirana/shop.db
store: sqlite
metrics_path: /var/lib/node_exporter/kirana.prom
language: mr
currency_places: 2
tax_bands: ["0", "5", "18"]
promotions:
  - name: Diwali
    kind: fixed_date_percent
    date: "11-01"
    percent: "5"
  - name: Gudi Padwa
    kind: fixed_date_percent
    date: "03-22"
    percent: "10"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/kirana/shop.db", cfg.DataPath)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, LanguageMarathi, cfg.Language)
	require.Len(t, cfg.Promotions, 2)

	bands, err := cfg.Bands()
	require.NoError(t, err)
	assert.Len(t, bands, 3)

	rule, err := cfg.PromotionRule()
	require.NoError(t, err)
	applied := promotion.Apply(rule, time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(200))
	assert.Equal(t, "Diwali", applied.Name)
	assert.True(t, applied.Amount.Equal(decimal.NewFromInt(10)))
}

func TestEmptyPromotionListDisablesDiscounts(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(writeConfig(t, "promotions: []\n"))
	require.NoError(t, err)

	rule, err := cfg.PromotionRule()
	require.NoError(t, err)
	padwa := time.Date(2024, time.March, 22, 0, 0, 0, 0, time.UTC)
	assert.True(t, rule.Evaluate(padwa, decimal.NewFromInt(1000)).IsZero())
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("KIRANA_DATA_PATH", "/tmp/other.json")
	t.Setenv("KIRANA_STORE", "MEMORY")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "data_path: shop.json\nstore: json\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/other.json", cfg.DataPath)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "store: [json"},
		{"unknown store", "store: postgres"},
		{"unknown language", "language: fr"},
		{"bad places", "currency_places: 9"},
		{"bad tax band", "tax_bands: [five]"},
		{"bad promotion date", "promotions:\n  - name: x\n    kind: fixed_date_percent\n    date: 22/03\n    percent: '10'\n"},
		{"unknown promotion kind", "promotions:\n  - name: x\n    kind: bogo\n"},
		{"empty data path", "data_path: ''\nstore: sqlite\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		clearEnv(t)
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
