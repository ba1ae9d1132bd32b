package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Environment  string          `mapstructure:"environment"`
	Server       ServerConfig    `mapstructure:"server"`
	Database     DatabaseConfig  `mapstructure:"database"`
	Storage      StorageConfig   `mapstructure:"storage"`
	Catalog      CatalogConfig   `mapstructure:"catalog"`
	Marathon     MarathonConfig  `mapstructure:"marathon"`
	RateLimiting RateLimitConfig `mapstructure:"rate_limiting"`
	Security     SecurityConfig  `mapstructure:"security"`
	Logging      LoggingConfig   `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path                  string        `mapstructure:"path"`
	MaxConnections        int           `mapstructure:"max_connections"`
	MaxIdleConnections    int           `mapstructure:"max_idle_connections"`
	ConnectionMaxLifetime time.Duration `mapstructure:"connection_max_lifetime"`
	LogQueries            bool          `mapstructure:"log_queries"`
}

// StorageConfig selects and tunes the persistence store backend
type StorageConfig struct {
	Backend       string        `mapstructure:"backend"` // sqlite, file or memory
	Dir           string        `mapstructure:"dir"`
	QuotaBytes    int64         `mapstructure:"quota_bytes"` // 0 = unlimited
	FlushInterval time.Duration `mapstructure:"flush_interval"`
}

// CatalogConfig contains remote movie catalog (TMDB) settings
type CatalogConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	BurstSize         int           `mapstructure:"burst_size"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RetryBackoff      time.Duration `mapstructure:"retry_backoff"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// MarathonConfig contains draft and enrichment behaviour
type MarathonConfig struct {
	// ClearOnExit is the default used when leaving marathon mode without an explicit choice
	ClearOnExit       bool          `mapstructure:"clear_on_exit"`
	EnrichmentTimeout time.Duration `mapstructure:"enrichment_timeout"`
}

// RateLimitConfig contains per-client API rate limits
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerSecond int  `mapstructure:"requests_per_second"`
	Burst             int  `mapstructure:"burst"`
}

// SecurityConfig contains CORS and request limits
type SecurityConfig struct {
	EnableCORS      bool     `mapstructure:"enable_cors"`
	CORSOrigins     []string `mapstructure:"cors_origins"`
	MaxRequestBytes int64    `mapstructure:"max_request_bytes"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}
