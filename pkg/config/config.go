package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	mu      sync.Mutex
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	mu.Lock()
	defer mu.Unlock()

	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("MARATHON")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		if err := viper.ReadInConfig(); err != nil {
			// A missing file means defaults and env vars only
			var notFound viper.ConfigFileNotFoundError
			if !os.IsNotExist(err) && !errors.As(err, &notFound) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// Reset clears viper state and allows Init to run again (for tests)
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	viper.Reset()
	once = sync.Once{}
	initErr = nil
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// DebugEnabled reports whether the configured log level is debug
func DebugEnabled() bool {
	return strings.EqualFold(viper.GetString("logging.level"), "debug")
}

// validStorageBackends lists the persistence store implementations
var validStorageBackends = map[string]bool{
	"sqlite": true,
	"file":   true,
	"memory": true,
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	backend := strings.ToLower(viper.GetString("storage.backend"))
	if !validStorageBackends[backend] {
		return fmt.Errorf("invalid storage backend: %q", backend)
	}
	if backend == "file" && viper.GetString("storage.dir") == "" {
		return fmt.Errorf("storage.dir is required for the file backend")
	}
	if backend == "sqlite" && viper.GetString("database.path") == "" {
		return fmt.Errorf("database.path is required for the sqlite backend")
	}

	if err := validateAPIKeys(); err != nil {
		return err
	}

	// Auto-correct invalid durations
	if viper.GetDuration("marathon.enrichment_timeout") <= 0 {
		viper.Set("marathon.enrichment_timeout", 15*time.Second)
	}
	if viper.GetDuration("storage.flush_interval") <= 0 {
		viper.Set("storage.flush_interval", 500*time.Millisecond)
	}

	return nil
}

// validateAPIKeys validates that API keys are not using placeholder values
func validateAPIKeys() error {
	env := viper.GetString("environment")
	isProduction := env == "production" || env == "prod"

	placeholders := []string{
		"YOUR_KEY_HERE",
		"YOUR_API_KEY",
		"changeme",
		"CHANGEME",
		"",
	}

	catalogKey := viper.GetString("catalog.api_key")
	for _, placeholder := range placeholders {
		if catalogKey == placeholder {
			if isProduction {
				return fmt.Errorf("invalid catalog API key: cannot use placeholder values in production")
			}
			fmt.Println("Warning: catalog API key is not configured, movie enrichment will fail")
			break
		}
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	backend := strings.ToLower(c.Storage.Backend)
	if !validStorageBackends[backend] {
		return fmt.Errorf("invalid storage backend: %q", c.Storage.Backend)
	}
	if backend == "file" && c.Storage.Dir == "" {
		return fmt.Errorf("storage.dir is required for the file backend")
	}

	if c.Storage.QuotaBytes < 0 {
		c.Storage.QuotaBytes = 0
	}

	if c.Marathon.EnrichmentTimeout <= 0 {
		c.Marathon.EnrichmentTimeout = 15 * time.Second
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/marathons.db")
	viper.SetDefault("database.max_connections", 10)
	viper.SetDefault("database.max_idle_connections", 5)
	viper.SetDefault("database.connection_max_lifetime", 30*time.Minute)
	viper.SetDefault("database.log_queries", false)

	// Storage defaults
	viper.SetDefault("storage.backend", "sqlite")
	viper.SetDefault("storage.dir", "./data/store")
	viper.SetDefault("storage.quota_bytes", 5242880) // Same order as a browser origin quota
	viper.SetDefault("storage.flush_interval", 500*time.Millisecond)

	// Catalog defaults
	viper.SetDefault("catalog.base_url", "https://api.themoviedb.org/3")
	viper.SetDefault("catalog.api_key", "")
	viper.SetDefault("catalog.timeout", 10*time.Second)
	viper.SetDefault("catalog.requests_per_minute", 600)
	viper.SetDefault("catalog.burst_size", 10)
	viper.SetDefault("catalog.max_retries", 3)
	viper.SetDefault("catalog.retry_backoff", time.Second)
	viper.SetDefault("catalog.cache_ttl", 1*time.Hour)
	viper.SetDefault("catalog.user_agent", "MarathonAPI/1.0")

	// Marathon defaults
	viper.SetDefault("marathon.clear_on_exit", true)
	viper.SetDefault("marathon.enrichment_timeout", 15*time.Second)

	// Rate limiting defaults
	viper.SetDefault("rate_limiting.enabled", true)
	viper.SetDefault("rate_limiting.requests_per_second", 10)
	viper.SetDefault("rate_limiting.burst", 20)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.max_request_bytes", 1048576)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.json", false)
}
