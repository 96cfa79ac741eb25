package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/concierge-cli/internal/cost"
	"github.com/sells-group/concierge-cli/internal/plans"
	"github.com/sells-group/concierge-cli/internal/scorer"
)

// Config holds the full application configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store" mapstructure:"store"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	Scoring ScoringConfig `yaml:"scoring" mapstructure:"scoring"`
	Pricing PricingConfig `yaml:"pricing" mapstructure:"pricing"`
	Plans   PlansConfig   `yaml:"plans" mapstructure:"plans"`
	Display DisplayConfig `yaml:"display" mapstructure:"display"`
}

// StoreConfig configures the intake record backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	Path        string `yaml:"path" mapstructure:"path"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	MaxConns    int32  `yaml:"max_conns" mapstructure:"max_conns"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ScoringConfig configures tier selection and goal keywords.
type ScoringConfig struct {
	PremiumMin int      `yaml:"premium_min" mapstructure:"premium_min"`
	EliteMin   int      `yaml:"elite_min" mapstructure:"elite_min"`
	Keywords   []string `yaml:"keywords" mapstructure:"keywords"`
}

// PricingConfig overrides base prices and the annual discount.
// Service add-on prices are fixed by the service catalog.
type PricingConfig struct {
	Basic          float64 `yaml:"basic" mapstructure:"basic"`
	Premium        float64 `yaml:"premium" mapstructure:"premium"`
	Elite          float64 `yaml:"elite" mapstructure:"elite"`
	AnnualDiscount float64 `yaml:"annual_discount" mapstructure:"annual_discount"`
}

// PlansConfig points at an optional plan catalog file.
type PlansConfig struct {
	CatalogPath string `yaml:"catalog_path" mapstructure:"catalog_path"`
}

// DisplayConfig controls human-readable output.
type DisplayConfig struct {
	Currency string `yaml:"currency" mapstructure:"currency"`
}

// Load reads configuration from .env, config file and environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: read .env")
	}

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CONCIERGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaultRates := cost.DefaultRates()
	defaultTiers := plans.DefaultThresholds()

	// Defaults
	v.SetDefault("store.driver", "file")
	v.SetDefault("store.path", "client_intakes.json")
	v.SetDefault("store.database_url", "")
	v.SetDefault("store.max_conns", 4)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 10.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("scoring.premium_min", defaultTiers.PremiumMin)
	v.SetDefault("scoring.elite_min", defaultTiers.EliteMin)
	v.SetDefault("scoring.keywords", scorer.DefaultConfig().Keywords)
	v.SetDefault("pricing.basic", defaultRates.BasePrices["basic"])
	v.SetDefault("pricing.premium", defaultRates.BasePrices["premium"])
	v.SetDefault("pricing.elite", defaultRates.BasePrices["elite"])
	v.SetDefault("pricing.annual_discount", defaultRates.AnnualDiscount)
	v.SetDefault("plans.catalog_path", "")
	v.SetDefault("display.currency", "USD")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "file":
		if c.Store.Path == "" {
			return eris.New("config: store.path is required for the file driver")
		}
	case "sqlite", "postgres":
		if c.Store.DatabaseURL == "" {
			return eris.Errorf("config: store.database_url is required for the %s driver", c.Store.Driver)
		}
	default:
		return eris.Errorf("config: unknown store.driver %q (want file, sqlite or postgres)", c.Store.Driver)
	}

	if err := c.Thresholds().Validate(); err != nil {
		return eris.Wrap(err, "config")
	}
	if err := scorer.ValidateConfig(c.ScorerConfig()); err != nil {
		return eris.Wrap(err, "config")
	}
	if err := cost.ValidateRates(c.Rates()); err != nil {
		return eris.Wrap(err, "config")
	}
	if c.Server.RateLimit < 0 || c.Server.RateBurst < 0 {
		return eris.New("config: server.rate_limit and server.rate_burst must be >= 0")
	}
	return nil
}

// Thresholds returns the tier thresholds.
func (c *Config) Thresholds() plans.Thresholds {
	return plans.Thresholds{PremiumMin: c.Scoring.PremiumMin, EliteMin: c.Scoring.EliteMin}
}

// ScorerConfig returns the default scoring rules with configured keywords applied.
func (c *Config) ScorerConfig() scorer.Config {
	sc := scorer.DefaultConfig()
	if len(c.Scoring.Keywords) > 0 {
		sc.Keywords = c.Scoring.Keywords
	}
	return sc
}

// Rates returns the default pricing tables with configured base prices and discount applied.
func (c *Config) Rates() cost.Rates {
	r := cost.DefaultRates()
	r.BasePrices["basic"] = c.Pricing.Basic
	r.BasePrices["premium"] = c.Pricing.Premium
	r.BasePrices["elite"] = c.Pricing.Elite
	r.AnnualDiscount = c.Pricing.AnnualDiscount
	return r
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
