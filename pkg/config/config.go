package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Provider  ProviderConfig
	Parser    ParserConfig
	Facility  FacilityConfig
	Ingest    IngestConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Typesense TypesenseConfig
	OpenAI    OpenAIConfig
	Log       LogConfig
}

// ProviderConfig identifies this provider and its record defaults
type ProviderConfig struct {
	ID              string `mapstructure:"id"`
	DefaultCurrency string `mapstructure:"default_currency"`
	EffectiveDate   string `mapstructure:"effective_date"` // YYYY-MM-DD, empty = today
}

// ParserConfig holds extraction ceilings and path selection
type ParserConfig struct {
	MaxFileBytes    int64 `mapstructure:"max_file_bytes"`
	PreviewMaxRows  int   `mapstructure:"preview_max_rows"`
	PreviewMaxChars int   `mapstructure:"preview_max_chars"`
	UseLLM          bool  `mapstructure:"use_llm"`
}

// FacilityConfig holds facility name resolution settings
type FacilityConfig struct {
	// ConfidenceThreshold gates the filename fallback, 0 (permissive) to 1
	ConfidenceThreshold float64 `mapstructure:"confidence_threshold"`

	// OverridesFile points to a JSON map of source file name to facility name
	OverridesFile string `mapstructure:"overrides_file"`
}

// IngestConfig holds batch ingestion settings
type IngestConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TypesenseConfig holds Typesense configuration
type TypesenseConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	RateLimitRPM   int    `mapstructure:"rate_limit_rpm"`
	RateLimitBurst int    `mapstructure:"rate_limit_burst"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level       string `mapstructure:"level"`
	Environment string `mapstructure:"environment"`
}

// Load reads configuration from environment variables with the PRICEFEED_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PRICEFEED")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider.id", "pricelist")
	v.SetDefault("provider.default_currency", "NGN")
	v.SetDefault("provider.effective_date", "")

	v.SetDefault("parser.max_file_bytes", 10*1024*1024)
	v.SetDefault("parser.preview_max_rows", 120)
	v.SetDefault("parser.preview_max_chars", 16000)
	v.SetDefault("parser.use_llm", false)

	v.SetDefault("facility.confidence_threshold", 0.5)
	v.SetDefault("facility.overrides_file", "")

	v.SetDefault("ingest.concurrency", 4)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "pricelist_ingestion")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("typesense.url", "http://localhost:8108")
	v.SetDefault("typesense.api_key", "xyz")

	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.rate_limit_rpm", 60)
	v.SetDefault("openai.rate_limit_burst", 5)

	v.SetDefault("log.level", "debug")
	v.SetDefault("log.environment", "development")

	for _, key := range []string{
		"provider.id", "provider.default_currency", "provider.effective_date",
		"parser.max_file_bytes", "parser.preview_max_rows", "parser.preview_max_chars", "parser.use_llm",
		"facility.confidence_threshold", "facility.overrides_file",
		"ingest.concurrency",
		"db.host", "db.port", "db.user", "db.password", "db.name", "db.sslmode",
		"redis.host", "redis.port", "redis.password", "redis.db",
		"typesense.url", "typesense.api_key",
		"openai.api_key", "openai.model", "openai.rate_limit_rpm", "openai.rate_limit_burst",
		"log.level", "log.environment",
	} {
		env := "PRICEFEED_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	cfg := &Config{
		Provider: ProviderConfig{
			ID:              v.GetString("provider.id"),
			DefaultCurrency: v.GetString("provider.default_currency"),
			EffectiveDate:   v.GetString("provider.effective_date"),
		},
		Parser: ParserConfig{
			MaxFileBytes:    v.GetInt64("parser.max_file_bytes"),
			PreviewMaxRows:  v.GetInt("parser.preview_max_rows"),
			PreviewMaxChars: v.GetInt("parser.preview_max_chars"),
			UseLLM:          v.GetBool("parser.use_llm"),
		},
		Facility: FacilityConfig{
			ConfidenceThreshold: v.GetFloat64("facility.confidence_threshold"),
			OverridesFile:       v.GetString("facility.overrides_file"),
		},
		Ingest: IngestConfig{
			Concurrency: v.GetInt("ingest.concurrency"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			Database: v.GetString("db.name"),
			SSLMode:  v.GetString("db.sslmode"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Typesense: TypesenseConfig{
			URL:    v.GetString("typesense.url"),
			APIKey: v.GetString("typesense.api_key"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         v.GetString("openai.api_key"),
			Model:          v.GetString("openai.model"),
			RateLimitRPM:   v.GetInt("openai.rate_limit_rpm"),
			RateLimitBurst: v.GetInt("openai.rate_limit_burst"),
		},
		Log: LogConfig{
			Level:       v.GetString("log.level"),
			Environment: v.GetString("log.environment"),
		},
	}

	return cfg, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DefaultEffectiveDate parses the configured effective date, falling back
// to the start of the current day.
func (c *ProviderConfig) DefaultEffectiveDate() time.Time {
	if c.EffectiveDate != "" {
		if t, err := time.Parse("2006-01-02", c.EffectiveDate); err == nil {
			return t
		}
	}
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
