package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Store       StoreConfig
	Blob        BlobConfig
	Identity    IdentityConfig
	Gateway     GatewayConfig
	RateLimit   RateLimitConfig
}

// StoreConfig holds record store configuration
type StoreConfig struct {
	Type string // "memory" or "sqlite"
	Path string
}

// BlobConfig holds facility image storage configuration
type BlobConfig struct {
	Type      string // "local" or "memory"
	LocalPath string
	BaseURL   string
}

// IdentityConfig holds identity provisioning configuration. When
// ProvisioningEnabled is false, user creation skips the account step
// entirely.
type IdentityConfig struct {
	ProvisioningEnabled bool
	JWTSecret           string
	Issuer              string
	TokenExpiryHours    int
}

// GatewayConfig holds payment gateway configuration
type GatewayConfig struct {
	Enabled      bool
	DeclineAbove float64
}

// RateLimitConfig holds rate limiting configuration for the local server
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	// Set up Viper
	viper.AutomaticEnv()
	viper.SetDefault("PORT", "8081")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("STORE_TYPE", "sqlite")
	viper.SetDefault("STORE_PATH", "./data/storage-rental.db")
	viper.SetDefault("BLOB_TYPE", "local")
	viper.SetDefault("BLOB_LOCAL_PATH", "./data/images")
	viper.SetDefault("BLOB_BASE_URL", "")
	viper.SetDefault("IDENTITY_PROVISIONING_ENABLED", false)
	viper.SetDefault("IDENTITY_ISSUER", "storage-rental-api")
	viper.SetDefault("IDENTITY_TOKEN_EXPIRY_HOURS", 24)
	viper.SetDefault("GATEWAY_ENABLED", false)
	viper.SetDefault("GATEWAY_DECLINE_ABOVE", 0.0)
	viper.SetDefault("RATE_LIMIT_RPS", 50.0)
	viper.SetDefault("RATE_LIMIT_BURST", 100)

	config := &Config{
		Environment: viper.GetString("ENVIRONMENT"),
		Port:        viper.GetString("PORT"),
		Store: StoreConfig{
			Type: viper.GetString("STORE_TYPE"),
			Path: viper.GetString("STORE_PATH"),
		},
		Blob: BlobConfig{
			Type:      viper.GetString("BLOB_TYPE"),
			LocalPath: viper.GetString("BLOB_LOCAL_PATH"),
			BaseURL:   viper.GetString("BLOB_BASE_URL"),
		},
		Identity: IdentityConfig{
			ProvisioningEnabled: viper.GetBool("IDENTITY_PROVISIONING_ENABLED"),
			JWTSecret:           viper.GetString("IDENTITY_JWT_SECRET"),
			Issuer:              viper.GetString("IDENTITY_ISSUER"),
			TokenExpiryHours:    viper.GetInt("IDENTITY_TOKEN_EXPIRY_HOURS"),
		},
		Gateway: GatewayConfig{
			Enabled:      viper.GetBool("GATEWAY_ENABLED"),
			DeclineAbove: viper.GetFloat64("GATEWAY_DECLINE_ABOVE"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             viper.GetInt("RATE_LIMIT_BURST"),
		},
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsInt gets an environment variable as integer with a fallback value
func GetEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
