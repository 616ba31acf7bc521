package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/fieldhouse-group/facility-cli/internal/store"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Catalog   CatalogConfig   `yaml:"catalog" mapstructure:"catalog"`
	Estimate  EstimateConfig  `yaml:"estimate" mapstructure:"estimate"`
	Lead      LeadConfig      `yaml:"lead" mapstructure:"lead"`
	Sheets    SheetsConfig    `yaml:"sheets" mapstructure:"sheets"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string            `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string            `yaml:"database_url" mapstructure:"database_url"`
	Pool        *store.PoolConfig `yaml:"pool" mapstructure:"pool"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// CatalogConfig points at an optional cost catalog override file. When empty
// the compiled-in catalog is used.
type CatalogConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// EstimateConfig holds estimation defaults applied when a request omits them.
type EstimateConfig struct {
	RegionMultiplier float64 `yaml:"region_multiplier" mapstructure:"region_multiplier"`
	Tier             string  `yaml:"tier" mapstructure:"tier"`
	DraftTTLHours    int     `yaml:"draft_ttl_hours" mapstructure:"draft_ttl_hours"`
}

// LeadConfig configures lead capture.
type LeadConfig struct {
	RateLimitSecs int `yaml:"rate_limit_secs" mapstructure:"rate_limit_secs"`
	RateBurst     int `yaml:"rate_burst" mapstructure:"rate_burst"`
	SyncRetries   int `yaml:"sync_retries" mapstructure:"sync_retries"`
	ResyncWorkers int `yaml:"resync_workers" mapstructure:"resync_workers"`
}

// SheetsConfig holds the lead sheet webhook settings.
type SheetsConfig struct {
	WebhookURL   string  `yaml:"webhook_url" mapstructure:"webhook_url"`
	RateLimitRPS float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
}

// AnthropicConfig holds Anthropic API settings for report narratives.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("FACILITY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "facility.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("estimate.region_multiplier", 1.0)
	v.SetDefault("estimate.tier", "mid")
	v.SetDefault("estimate.draft_ttl_hours", 720)
	v.SetDefault("lead.rate_limit_secs", 60)
	v.SetDefault("lead.rate_burst", 3)
	v.SetDefault("lead.sync_retries", 3)
	v.SetDefault("lead.resync_workers", 4)
	v.SetDefault("sheets.rate_limit_rps", 1.0)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
