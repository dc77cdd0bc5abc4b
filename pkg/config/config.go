// Package config loads hestia configuration from file, environment
// variables and defaults using viper.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Database configuration (the property graph store)
	Database DatabaseConfig `mapstructure:"database"`

	// Intent holds the language-model configuration for query intent
	// extraction.
	Intent IntentConfig `mapstructure:"intent"`

	// Embedding configuration
	Embedding EmbeddingConfig `mapstructure:"embedding"`

	// Search configuration
	Search SearchConfig `mapstructure:"search"`

	// Ingest configuration for the import and backfill jobs
	Ingest IngestConfig `mapstructure:"ingest"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// DatabaseConfig holds graph store configuration.
type DatabaseConfig struct {
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// IntentConfig holds configuration for the intent-extraction model.
type IntentConfig struct {
	Provider    string  `mapstructure:"provider"` // openai or openai-compatible
	Model       string  `mapstructure:"model"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Temperature float32 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	// TimeoutSeconds bounds one provider call; the in-flight request is
	// cancelled when it elapses.
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// EmbeddingConfig holds embedding provider configuration.
type EmbeddingConfig struct {
	Provider       string `mapstructure:"provider"` // openai, embedeverything
	Model          string `mapstructure:"model"`
	APIKey         string `mapstructure:"api_key"`
	BaseURL        string `mapstructure:"base_url"`
	Dimensions     int    `mapstructure:"dimensions"`
	BatchSize      int    `mapstructure:"batch_size"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// SearchConfig holds defaults for the search pipeline.
type SearchConfig struct {
	// GraphLimit caps the candidate set size before reranking.
	GraphLimit int `mapstructure:"graph_limit"`
	// TopK caps the final result count.
	TopK int `mapstructure:"top_k"`
}

// IngestConfig holds configuration for the import and backfill jobs.
type IngestConfig struct {
	DataDir string `mapstructure:"data_dir"`
	Workers int    `mapstructure:"workers"`
}

// TelemetryConfig holds telemetry configuration.
type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	ParquetPath string `mapstructure:"parquet_path"`
}

// CircuitBreakerConfig holds configuration for circuit breaking around the
// intent-extraction provider.
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// IntentTimeout returns the configured intent-provider timeout.
func (c *Config) IntentTimeout() time.Duration {
	return time.Duration(c.Intent.TimeoutSeconds) * time.Second
}

// EmbeddingTimeout returns the configured embedding-provider timeout.
func (c *Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutSeconds) * time.Second
}

// Load loads configuration from file and environment variables.
func Load() (*Config, error) {
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values.
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")

	// Database defaults
	viper.SetDefault("database.uri", "bolt://localhost:7687")
	viper.SetDefault("database.username", "neo4j")
	viper.SetDefault("database.password", "password")
	viper.SetDefault("database.database", "neo4j")

	// Intent model defaults
	viper.SetDefault("intent.provider", "openai")
	viper.SetDefault("intent.model", "gpt-4o-mini")
	viper.SetDefault("intent.temperature", 0.0)
	viper.SetDefault("intent.max_tokens", 1024)
	viper.SetDefault("intent.timeout_seconds", 30)

	// Embedding defaults
	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "text-embedding-3-small")
	viper.SetDefault("embedding.dimensions", 1536)
	viper.SetDefault("embedding.batch_size", 64)
	viper.SetDefault("embedding.timeout_seconds", 30)

	// Search defaults
	viper.SetDefault("search.graph_limit", 200)
	viper.SetDefault("search.top_k", 10)

	// Ingest defaults
	viper.SetDefault("ingest.workers", 4)

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", false)
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.hestia/telemetry", home))
	}

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", false)
	viper.SetDefault("circuit_breaker.max_requests", 1)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 60)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)
}

// overrideWithEnv overrides config with well-known environment variables.
func overrideWithEnv(config *Config) {
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Database.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Database.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Database.Password = pass
	}

	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		if config.Intent.APIKey == "" {
			config.Intent.APIKey = apiKey
		}
		if config.Embedding.APIKey == "" {
			config.Embedding.APIKey = apiKey
		}
	}
	if model := os.Getenv("OPENAI_LLM_MODEL"); model != "" {
		config.Intent.Model = model
	}
	if model := os.Getenv("OPENAI_EMBEDDING_MODEL"); model != "" {
		config.Embedding.Model = model
	}
}
