package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	Pricing PricingConfig
	Metrics MetricsConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// PricingConfig holds line pricing and display settings
type PricingConfig struct {
	RoundOff                  bool   // round document totals to whole units
	CurrencySuffix            string // shown after absolute discount amounts
	Locale                    string // BCP 47 tag for digit grouping
	LegacyZeroDiscountDisplay bool   // render every discount figure as zero
	BatchWorkers              int    // goroutines used to price document batches
}

// MetricsConfig holds OpenTelemetry metrics export settings
type MetricsConfig struct {
	Enabled           bool
	CollectorEndpoint string
	Insecure          bool
	ExportInterval    time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ERP_ prefix (e.g., ERP_PRICING_ROUND_OFF)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	return fromViper(v)
}

// LoadFile loads configuration from the given TOML file, still honouring
// ERP_ environment overrides
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("ERP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Pricing: PricingConfig{
			RoundOff:                  v.GetBool("pricing.round_off"),
			CurrencySuffix:            v.GetString("pricing.currency_suffix"),
			Locale:                    v.GetString("pricing.locale"),
			LegacyZeroDiscountDisplay: v.GetBool("pricing.legacy_zero_discount_display"),
			BatchWorkers:              v.GetInt("pricing.batch_workers"),
		},
		Metrics: MetricsConfig{
			Enabled:           v.GetBool("metrics.enabled"),
			CollectorEndpoint: v.GetString("metrics.collector_endpoint"),
			Insecure:          v.GetBool("metrics.insecure"),
			ExportInterval:    v.GetDuration("metrics.export_interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "lineprice"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Pricing.CurrencySuffix == "" {
		cfg.Pricing.CurrencySuffix = "SAR"
	}
	if cfg.Pricing.Locale == "" {
		cfg.Pricing.Locale = "en"
	}
	if cfg.Pricing.BatchWorkers == 0 {
		cfg.Pricing.BatchWorkers = 4
	}
	if cfg.Metrics.CollectorEndpoint == "" {
		cfg.Metrics.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Metrics.ExportInterval == 0 {
		cfg.Metrics.ExportInterval = 10 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if _, err := language.Parse(c.Pricing.Locale); err != nil {
		return fmt.Errorf("pricing.locale %q is not a valid language tag: %w", c.Pricing.Locale, err)
	}
	if c.Pricing.BatchWorkers < 0 {
		return fmt.Errorf("pricing.batch_workers must be positive, got %d", c.Pricing.BatchWorkers)
	}

	if c.Metrics.ExportInterval < 0 {
		return fmt.Errorf("metrics.export_interval cannot be negative")
	}

	if c.App.Env == "production" {
		if c.Pricing.LegacyZeroDiscountDisplay {
			return fmt.Errorf("pricing.legacy_zero_discount_display must be false in production")
		}
	}

	return nil
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
