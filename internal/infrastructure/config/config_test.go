package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvKeys = []string{
	"ERP_APP_NAME",
	"ERP_APP_ENV",
	"ERP_LOG_LEVEL",
	"ERP_LOG_FORMAT",
	"ERP_LOG_OUTPUT",
	"ERP_PRICING_ROUND_OFF",
	"ERP_PRICING_CURRENCY_SUFFIX",
	"ERP_PRICING_LOCALE",
	"ERP_PRICING_LEGACY_ZERO_DISCOUNT_DISPLAY",
	"ERP_PRICING_BATCH_WORKERS",
	"ERP_METRICS_ENABLED",
	"ERP_METRICS_COLLECTOR_ENDPOINT",
	"ERP_METRICS_INSECURE",
	"ERP_METRICS_EXPORT_INTERVAL",
}

// isolateEnv clears every ERP_ key used by Load and restores it afterwards
func isolateEnv(t *testing.T) {
	t.Helper()
	original := make(map[string]string, len(configEnvKeys))
	for _, k := range configEnvKeys {
		original[k] = os.Getenv(k)
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for k, v := range original {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		isolateEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "lineprice", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "console", cfg.Log.Format)
		assert.Equal(t, "stderr", cfg.Log.Output)
		assert.False(t, cfg.Pricing.RoundOff)
		assert.Equal(t, "SAR", cfg.Pricing.CurrencySuffix)
		assert.Equal(t, "en", cfg.Pricing.Locale)
		assert.False(t, cfg.Pricing.LegacyZeroDiscountDisplay)
		assert.Equal(t, 4, cfg.Pricing.BatchWorkers)
		assert.False(t, cfg.Metrics.Enabled)
		assert.Equal(t, "localhost:4317", cfg.Metrics.CollectorEndpoint)
		assert.Equal(t, 10*time.Second, cfg.Metrics.ExportInterval)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("loads values from environment variables with ERP prefix", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_APP_NAME", "pricing-job")
		os.Setenv("ERP_APP_ENV", "testing")
		os.Setenv("ERP_LOG_LEVEL", "debug")
		os.Setenv("ERP_LOG_FORMAT", "json")
		os.Setenv("ERP_PRICING_ROUND_OFF", "true")
		os.Setenv("ERP_PRICING_CURRENCY_SUFFIX", "AED")
		os.Setenv("ERP_PRICING_LOCALE", "de")
		os.Setenv("ERP_PRICING_LEGACY_ZERO_DISCOUNT_DISPLAY", "true")
		os.Setenv("ERP_PRICING_BATCH_WORKERS", "8")
		os.Setenv("ERP_METRICS_ENABLED", "true")
		os.Setenv("ERP_METRICS_COLLECTOR_ENDPOINT", "otel:4317")
		os.Setenv("ERP_METRICS_EXPORT_INTERVAL", "30s")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "pricing-job", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
		assert.True(t, cfg.Pricing.RoundOff)
		assert.Equal(t, "AED", cfg.Pricing.CurrencySuffix)
		assert.Equal(t, "de", cfg.Pricing.Locale)
		assert.True(t, cfg.Pricing.LegacyZeroDiscountDisplay)
		assert.Equal(t, 8, cfg.Pricing.BatchWorkers)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "otel:4317", cfg.Metrics.CollectorEndpoint)
		assert.Equal(t, 30*time.Second, cfg.Metrics.ExportInterval)
	})

	t.Run("zero batch workers uses default", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_PRICING_BATCH_WORKERS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set"
		assert.Equal(t, 4, cfg.Pricing.BatchWorkers)
	})

	t.Run("validates batch workers cannot be negative", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_PRICING_BATCH_WORKERS", "-2")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pricing.batch_workers")
	})

	t.Run("validates export interval cannot be negative", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_METRICS_EXPORT_INTERVAL", "-1s")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "metrics.export_interval")
	})

	t.Run("validates locale", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_PRICING_LOCALE", "not a locale!")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pricing.locale")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	t.Run("rejects legacy zero discount display in production", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_APP_ENV", "production")
		os.Setenv("ERP_PRICING_LEGACY_ZERO_DISCOUNT_DISPLAY", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "legacy_zero_discount_display")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		isolateEnv(t)
		os.Setenv("ERP_APP_ENV", "production")

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})
}

func TestLoadFile(t *testing.T) {
	t.Run("reads a TOML file", func(t *testing.T) {
		isolateEnv(t)
		path := filepath.Join(t.TempDir(), "pricing.toml")
		content := `
[app]
env = "staging"

[pricing]
round_off = true
currency_suffix = "USD"
batch_workers = 2
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := LoadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "staging", cfg.App.Env)
		assert.True(t, cfg.Pricing.RoundOff)
		assert.Equal(t, "USD", cfg.Pricing.CurrencySuffix)
		assert.Equal(t, 2, cfg.Pricing.BatchWorkers)
		assert.Equal(t, "en", cfg.Pricing.Locale)
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		isolateEnv(t)
		path := filepath.Join(t.TempDir(), "pricing.toml")
		require.NoError(t, os.WriteFile(path, []byte("[pricing]\nround_off = true\n"), 0o600))
		os.Setenv("ERP_PRICING_ROUND_OFF", "false")

		cfg, err := LoadFile(path)
		require.NoError(t, err)
		assert.False(t, cfg.Pricing.RoundOff)
	})

	t.Run("missing file is an error", func(t *testing.T) {
		isolateEnv(t)
		_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
		assert.Error(t, err)
	})
}
