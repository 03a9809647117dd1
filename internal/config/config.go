package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string
	Shopify     ShopifyConfig
	RateLimit   RateLimitConfig
	// CustomersFile points at the JSON directory mapping Shopify customer IDs
	// to display names and emails. Optional; reports fall back to upstream data.
	CustomersFile string
}

type ShopifyConfig struct {
	ShopDomain  string
	AccessToken string
	APIVersion  string
}

// RateLimitConfig governs the shared token bucket gating all outbound Shopify
// calls (REST and GraphQL alike).
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SHOPIFY_RATE_LIMIT_RPS", "2")
	viper.SetDefault("SHOPIFY_RATE_LIMIT_BURST", "4")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	rps, err := strconv.ParseFloat(getEnvOrViper("SHOPIFY_RATE_LIMIT_RPS", "2"), 64)
	if err != nil || rps <= 0 {
		return nil, fmt.Errorf("SHOPIFY_RATE_LIMIT_RPS must be a positive number")
	}
	burst, err := strconv.Atoi(getEnvOrViper("SHOPIFY_RATE_LIMIT_BURST", "4"))
	if err != nil || burst < 1 {
		return nil, fmt.Errorf("SHOPIFY_RATE_LIMIT_BURST must be a positive integer")
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		LogLevel:    getEnvOrViper("LOG_LEVEL", "info"),
		Shopify: ShopifyConfig{
			ShopDomain:  strings.TrimSpace(getEnvOrViper("SHOPIFY_SHOP_DOMAIN", "")),
			AccessToken: strings.TrimSpace(getEnvOrViper("SHOPIFY_ACCESS_TOKEN", "")),
			APIVersion:  getEnvOrViper("SHOPIFY_API_VERSION", "2026-01"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: rps,
			Burst:             burst,
		},
		CustomersFile: strings.TrimSpace(getEnvOrViper("CUSTOMERS_FILE", "customers.json")),
	}

	// Validate required fields
	if cfg.Shopify.ShopDomain == "" {
		return nil, fmt.Errorf("SHOPIFY_SHOP_DOMAIN is required")
	}
	if cfg.Shopify.AccessToken == "" {
		return nil, fmt.Errorf("SHOPIFY_ACCESS_TOKEN is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
