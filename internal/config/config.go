// Package config loads application configuration from an optional YAML file
// and DISCOVERY_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Spanner       SpannerConfig       `mapstructure:"spanner"`
	Cache         CacheConfig         `mapstructure:"cache"`
	RateLimit     RateLimitConfig     `mapstructure:"ratelimit"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	HTTPPort        string        `mapstructure:"http_port"`
	GRPCPort        string        `mapstructure:"grpc_port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// SpannerConfig identifies the catalog database.
type SpannerConfig struct {
	Database string `mapstructure:"database"`
}

// CacheConfig holds category tree cache configuration
type CacheConfig struct {
	Type     string        `mapstructure:"type"` // "memory", "redis" or "none"
	RedisURL string        `mapstructure:"redis_url"`
	TreeTTL  time.Duration `mapstructure:"tree_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerClientRPS   float64 `mapstructure:"per_client_rps"`
	PerClientBurst int     `mapstructure:"per_client_burst"`
	CatalogRPS     float64 `mapstructure:"catalog_rps"`
	CatalogBurst   int     `mapstructure:"catalog_burst"`
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/discovery/")

	// DISCOVERY_SERVER_HTTP_PORT overrides server.http_port.
	v.SetEnvPrefix("DISCOVERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.http_port", "8080")
	v.SetDefault("server.grpc_port", "9090")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")

	// Default for local development with emulator
	v.SetDefault("spanner.database", "projects/test-project/instances/dev-instance/databases/discovery-db")

	v.SetDefault("cache.type", "memory")
	v.SetDefault("cache.redis_url", "")
	v.SetDefault("cache.tree_ttl", "5m")

	v.SetDefault("ratelimit.per_client_rps", 20)
	v.SetDefault("ratelimit.per_client_burst", 40)
	v.SetDefault("ratelimit.catalog_rps", 50)
	v.SetDefault("ratelimit.catalog_burst", 100)

	v.SetDefault("observability.log_level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Spanner.Database == "" {
		return fmt.Errorf("spanner database is required (set DISCOVERY_SPANNER_DATABASE)")
	}
	if _, _, _, err := config.Spanner.DatabasePath(); err != nil {
		return err
	}

	switch config.Cache.Type {
	case "memory", "redis", "none":
	default:
		return fmt.Errorf("cache type must be 'memory', 'redis' or 'none', got: %s", config.Cache.Type)
	}

	if config.Cache.Type == "redis" && config.Cache.RedisURL == "" {
		return fmt.Errorf("redis URL is required when cache type is 'redis'")
	}

	if config.RateLimit.PerClientRPS <= 0 || config.RateLimit.CatalogRPS <= 0 {
		return fmt.Errorf("rate limits must be positive")
	}

	return nil
}

// DatabasePath splits the configured database into its project, instance
// and database IDs.
func (c SpannerConfig) DatabasePath() (project, instance, database string, err error) {
	parts := strings.Split(c.Database, "/")
	if len(parts) != 6 || parts[0] != "projects" || parts[2] != "instances" || parts[4] != "databases" {
		return "", "", "", fmt.Errorf("malformed spanner database %q", c.Database)
	}
	return parts[1], parts[3], parts[5], nil
}

// InstancePath returns projects/<p>/instances/<i> for the configured database.
func (c SpannerConfig) InstancePath() string {
	project, instance, _, _ := c.DatabasePath()
	return fmt.Sprintf("projects/%s/instances/%s", project, instance)
}
