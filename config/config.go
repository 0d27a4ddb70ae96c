package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	SerpAPI  SerpAPIConfig
	Matching MatchingConfig
	Pricing  PricingConfig
	Cache    CacheConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SerpAPIConfig holds the visual search provider configuration
type SerpAPIConfig struct {
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Country  string `mapstructure:"country"`
	Language string `mapstructure:"language"`
}

// MatchingConfig holds the matching pipeline tunables
type MatchingConfig struct {
	MarketplaceSimilarityFloor float64       `mapstructure:"marketplace_similarity_floor"`
	BrandSiteSimilarityFloor   float64       `mapstructure:"brand_site_similarity_floor"`
	RankPenalty                float64       `mapstructure:"rank_penalty"`
	CoverageThreshold          float64       `mapstructure:"coverage_threshold"`
	SearchDelay                time.Duration `mapstructure:"search_delay"`
	CanonicalBaseURL           string        `mapstructure:"canonical_base_url"`
	Debug                      bool          `mapstructure:"debug"`
}

// PricingConfig holds the price fetcher tunables
type PricingConfig struct {
	MaxRetries int           `mapstructure:"max_retries"`
	Timeout    time.Duration `mapstructure:"timeout"`
	RetryPause time.Duration `mapstructure:"retry_pause"`
	Debug      bool          `mapstructure:"debug"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/klydo-finder/")

	// Environment variable settings
	v.SetEnvPrefix("KLYDO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// SerpAPI defaults. The empty api_key default registers the key so the
	// env override is picked up during unmarshal.
	v.SetDefault("serpapi.api_key", "")
	v.SetDefault("serpapi.base_url", "https://serpapi.com/search")
	v.SetDefault("serpapi.country", "in")
	v.SetDefault("serpapi.language", "en")

	// Matching defaults
	v.SetDefault("matching.marketplace_similarity_floor", 5.0)
	v.SetDefault("matching.brand_site_similarity_floor", 15.0)
	v.SetDefault("matching.rank_penalty", 5.0)
	v.SetDefault("matching.coverage_threshold", 0.5)
	v.SetDefault("matching.search_delay", "1s")
	v.SetDefault("matching.canonical_base_url", "https://klydo.in")
	v.SetDefault("matching.debug", false)

	// Pricing defaults
	v.SetDefault("pricing.max_retries", 3)
	v.SetDefault("pricing.timeout", "30s")
	v.SetDefault("pricing.retry_pause", "1s")
	v.SetDefault("pricing.debug", false)

	// Cache defaults
	v.SetDefault("cache.ttl", "24h")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.SerpAPI.APIKey == "" {
		return fmt.Errorf("SerpAPI key is required (set KLYDO_SERPAPI_API_KEY)")
	}

	if config.Matching.CoverageThreshold < 0 || config.Matching.CoverageThreshold > 1 {
		return fmt.Errorf("coverage threshold must be in [0, 1], got: %v", config.Matching.CoverageThreshold)
	}

	if config.Matching.MarketplaceSimilarityFloor < 0 || config.Matching.BrandSiteSimilarityFloor < 0 {
		return fmt.Errorf("similarity floors must be non-negative")
	}

	if config.Pricing.MaxRetries < 1 {
		return fmt.Errorf("pricing max_retries must be at least 1, got: %d", config.Pricing.MaxRetries)
	}

	return nil
}
