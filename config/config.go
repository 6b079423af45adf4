package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/tourdesk/quote-service/internal/catalog"
	"github.com/tourdesk/quote-service/internal/database"
	"github.com/tourdesk/quote-service/internal/fx"
	"github.com/tourdesk/quote-service/internal/itinerary"
	"github.com/tourdesk/quote-service/internal/telemetry"
)

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Pricing   PricingConfig   `mapstructure:"pricing"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	FX        FXConfig        `mapstructure:"fx"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	Host           string        `mapstructure:"host"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	InternalAPIKey string        `mapstructure:"internal_api_key"`
	// Service-wide limit for /internal routes
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
	// Idle drafts are discarded after this long
	DraftTTL time.Duration `mapstructure:"draft_ttl"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxConnections  int           `mapstructure:"max_connections"`
	MinConnections  int           `mapstructure:"min_connections"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Format  string `mapstructure:"format"`
	NoColor bool   `mapstructure:"no_color"`
}

// PricingConfig holds the markup and quantity rules of the engine
type PricingConfig struct {
	MarkupFactor          string   `mapstructure:"markup_factor"`
	BaseCurrency          string   `mapstructure:"base_currency"`
	HeadcountServiceTypes []string `mapstructure:"headcount_service_types"`
	MaxTripDays           int      `mapstructure:"max_trip_days"`
	MaxSelections         int      `mapstructure:"max_selections"`
}

// CatalogConfig holds supplier catalog source configuration
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	WorkbookPath      string        `mapstructure:"workbook_path"`
	WorkbookTypes     []string      `mapstructure:"workbook_types"`
	CSVDir            string        `mapstructure:"csv_dir"`
	CSVEncoding       string        `mapstructure:"csv_encoding"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	MaxRetries        int           `mapstructure:"max_retries"`
	InitialBackoffMs  int           `mapstructure:"initial_backoff_ms"`
	MaxBackoffMs      int           `mapstructure:"max_backoff_ms"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
}

// FXConfig holds exchange-rate configuration
type FXConfig struct {
	// Static rates keyed FROM_TO, e.g. TRY_EUR: "0.027"
	Rates       map[string]string `mapstructure:"rates"`
	RedisURL    string            `mapstructure:"redis_url"`
	RedisPrefix string            `mapstructure:"redis_prefix"`
	RedisTTL    time.Duration     `mapstructure:"redis_ttl"`
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Environment string `mapstructure:"environment"`
}

var globalConfig *Config

// Load loads the configuration from file, .env, and environment variables
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// .env is optional
	if err := loadEnvFile(); err != nil {
		log.Debug().Err(err).Msg(".env file not loaded")
	}

	// Enable environment variable override
	v.SetEnvPrefix("QUOTE_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind env keys for nested config
	bindEnvVars(v)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	globalConfig = &cfg
	return &cfg, nil
}

// loadEnvFile loads the first .env found in the working directory or ./config.
// Variables already set in the environment win.
func loadEnvFile() error {
	for _, path := range []string{".env", "config/.env"} {
		if _, err := os.Stat(path); err == nil {
			return godotenv.Load(path)
		}
	}
	return fmt.Errorf("no .env file found")
}

// bindEnvVars binds plain environment variable names to config keys
func bindEnvVars(v *viper.Viper) {
	// Database
	v.BindEnv("database.url", "QUOTE_SERVICE_DATABASE_URL", "DATABASE_URL")

	// Server
	v.BindEnv("server.port", "QUOTE_SERVICE_SERVER_PORT", "PORT")
	v.BindEnv("server.host", "QUOTE_SERVICE_SERVER_HOST", "HOST")
	v.BindEnv("server.internal_api_key", "QUOTE_SERVICE_SERVER_INTERNAL_API_KEY", "INTERNAL_API_KEY")

	// Logging
	v.BindEnv("logging.level", "QUOTE_SERVICE_LOGGING_LEVEL", "LOG_LEVEL")

	// Catalog
	v.BindEnv("catalog.base_url", "QUOTE_SERVICE_CATALOG_BASE_URL", "CATALOG_BASE_URL")
	v.BindEnv("catalog.api_key", "QUOTE_SERVICE_CATALOG_API_KEY", "CATALOG_API_KEY")

	// FX
	v.BindEnv("fx.redis_url", "QUOTE_SERVICE_FX_REDIS_URL", "REDIS_URL")

	// Telemetry
	v.BindEnv("telemetry.endpoint", "QUOTE_SERVICE_TELEMETRY_ENDPOINT", "OTEL_EXPORTER_OTLP_ENDPOINT")
	v.BindEnv("telemetry.service_name", "QUOTE_SERVICE_TELEMETRY_SERVICE_NAME", "OTEL_SERVICE_NAME")
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.rate_limit_rps", 50)
	v.SetDefault("server.rate_limit_burst", 100)
	v.SetDefault("server.draft_ttl", 12*time.Hour)

	// Database defaults
	v.SetDefault("database.max_connections", 25)
	v.SetDefault("database.min_connections", 5)
	v.SetDefault("database.max_conn_lifetime", 1*time.Hour)
	v.SetDefault("database.max_conn_idle_time", 30*time.Minute)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.no_color", false)

	// Pricing defaults
	v.SetDefault("pricing.markup_factor", "1.2")
	v.SetDefault("pricing.base_currency", "EUR")
	v.SetDefault("pricing.headcount_service_types", []string{"entrance_fee", "restaurant"})
	v.SetDefault("pricing.max_trip_days", 90)
	v.SetDefault("pricing.max_selections", 500)

	// Catalog defaults
	v.SetDefault("catalog.timeout", 30*time.Second)
	v.SetDefault("catalog.requests_per_second", 2)
	v.SetDefault("catalog.burst", 1)
	v.SetDefault("catalog.max_retries", 3)
	v.SetDefault("catalog.initial_backoff_ms", 100)
	v.SetDefault("catalog.max_backoff_ms", 30000)
	v.SetDefault("catalog.cache_ttl", 5*time.Minute)
	v.SetDefault("catalog.csv_encoding", "windows-1254")

	// FX defaults
	v.SetDefault("fx.redis_prefix", "fx")
	v.SetDefault("fx.redis_ttl", 6*time.Hour)

	// Telemetry defaults
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "opentelemetry-collector:4317")
	v.SetDefault("telemetry.service_name", telemetry.DefaultServiceName)
}

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// GetDatabaseURL returns the database URL from config or environment
func GetDatabaseURL() string {
	if cfg := Get(); cfg != nil && cfg.Database.URL != "" {
		return cfg.Database.URL
	}
	return os.Getenv("DATABASE_URL")
}

// ItineraryConfig converts the pricing section into a validated engine config.
func (p PricingConfig) ItineraryConfig() (*itinerary.Config, error) {
	cfg := itinerary.Defaults()

	if p.MarkupFactor != "" {
		markup, err := decimal.NewFromString(strings.TrimSpace(p.MarkupFactor))
		if err != nil {
			return nil, itinerary.ErrInvalidConfig{Field: "markup_factor", Reason: "not a decimal: " + p.MarkupFactor}
		}
		cfg.MarkupFactor = markup
	}
	if p.BaseCurrency != "" {
		cfg.BaseCurrency = strings.ToUpper(strings.TrimSpace(p.BaseCurrency))
	}
	if p.HeadcountServiceTypes != nil {
		types := make([]catalog.ServiceType, 0, len(p.HeadcountServiceTypes))
		for _, raw := range p.HeadcountServiceTypes {
			st, err := catalog.ParseServiceType(raw)
			if err != nil {
				return nil, itinerary.ErrInvalidConfig{Field: "headcount_service_types", Reason: err.Error()}
			}
			types = append(types, st)
		}
		cfg.HeadcountServiceTypes = types
	}
	if p.MaxTripDays != 0 {
		cfg.MaxTripDays = p.MaxTripDays
	}
	if p.MaxSelections != 0 {
		cfg.MaxSelections = p.MaxSelections
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// RegistryOptions converts the catalog section into source wiring.
func (c CatalogConfig) RegistryOptions() (catalog.RegistryOptions, error) {
	opts := catalog.RegistryOptions{
		WorkbookPath: c.WorkbookPath,
		CSVDir:       c.CSVDir,
		CSVEncoding:  c.CSVEncoding,
		CacheTTL:     c.CacheTTL,
	}
	if c.BaseURL != "" {
		opts.HTTP = &catalog.HTTPSourceConfig{
			BaseURL:           c.BaseURL,
			APIKey:            c.APIKey,
			Timeout:           c.Timeout,
			RequestsPerSecond: c.RequestsPerSecond,
			Burst:             c.Burst,
			MaxRetries:        c.MaxRetries,
			InitialBackoff:    time.Duration(c.InitialBackoffMs) * time.Millisecond,
			MaxBackoff:        time.Duration(c.MaxBackoffMs) * time.Millisecond,
		}
	}
	for _, raw := range c.WorkbookTypes {
		st, err := catalog.ParseServiceType(raw)
		if err != nil {
			return catalog.RegistryOptions{}, fmt.Errorf("catalog.workbook_types: %w", err)
		}
		opts.WorkbookTypes = append(opts.WorkbookTypes, st)
	}
	return opts, nil
}

// PoolOptions converts the database section for url.
func (d DatabaseConfig) PoolOptions(url string, migrate bool) database.PoolOptions {
	return database.PoolOptions{
		URL:             url,
		MaxConns:        d.MaxConnections,
		MinConns:        d.MinConnections,
		MaxConnLifetime: d.MaxConnLifetime,
		MaxConnIdleTime: d.MaxConnIdleTime,
		Migrate:         migrate,
	}
}

// ToTelemetry converts the telemetry section.
func (t TelemetryConfig) ToTelemetry() telemetry.Config {
	return telemetry.Config{
		Enabled:     t.Enabled,
		Endpoint:    t.Endpoint,
		ServiceName: t.ServiceName,
		Environment: t.Environment,
	}
}

// RateSource builds the exchange-rate chain: configured static rates first,
// then Redis (reading through to stored when set), else stored alone.
// stored may be nil. The returned close func releases the Redis client.
func (f FXConfig) RateSource(ctx context.Context, stored fx.RateSource) (fx.RateSource, func() error, error) {
	table, err := fx.ParseTable(f.Rates)
	if err != nil {
		return nil, nil, fmt.Errorf("fx.rates: %w", err)
	}
	chain := fx.Chain{table}
	closeFn := func() error { return nil }

	if f.RedisURL == "" {
		if stored != nil {
			chain = append(chain, stored)
		}
		return chain, closeFn, nil
	}

	client, err := fx.NewRedisClient(f.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	src := fx.NewRedisSource(client, fx.RedisOptions{Prefix: f.RedisPrefix, TTL: f.RedisTTL, Fallback: stored})
	if err := src.Ping(ctx); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("redis unavailable: %w", err)
	}
	return append(chain, src), client.Close, nil
}
