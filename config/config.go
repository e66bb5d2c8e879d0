package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const VERSION = "1.4"

type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	SMTP        SMTPConfig
	Webhook     WebhookConfig
	SecretKey   string
	Environment string
	LogLevel    string
	Version     string
}

type ServerConfig struct {
	Port int
	Host string
}

// StoreConfig controls the simulated network latency of the mock data layer
// and whether the demo dataset is loaded at startup.
type StoreConfig struct {
	LatencyMin time.Duration
	LatencyMax time.Duration
	SeedDemo   bool
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
	// Enabled switches the mailer from logged-only stubs to real delivery.
	Enabled bool
}

type WebhookConfig struct {
	// Secret signs outbound webhook payloads (standard-webhooks format).
	Secret string
}

// LoadOptions contains options for loading configuration
type LoadOptions struct {
	EnvFile string // Optional environment file to load (e.g., ".env", ".env.test")
}

// Load loads the configuration with default options
func Load() (*Config, error) {
	// Try to load .env file but don't require it
	return LoadWithOptions(LoadOptions{EnvFile: ".env"})
}

// LoadWithOptions loads the configuration with the specified options
func LoadWithOptions(opts LoadOptions) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("VERSION", VERSION)

	// Mock store latency window, in milliseconds
	v.SetDefault("STORE_LATENCY_MIN_MS", 100)
	v.SetDefault("STORE_LATENCY_MAX_MS", 400)
	v.SetDefault("SEED_DEMO_DATA", true)

	// SMTP defaults
	v.SetDefault("SMTP_PORT", 587)
	v.SetDefault("SMTP_FROM_NAME", "Agencydesk")
	v.SetDefault("SMTP_ENABLED", false)

	v.SetDefault("SECRET_KEY", "")
	v.SetDefault("WEBHOOK_SECRET", "")

	// Load environment file if specified
	if opts.EnvFile != "" {
		v.SetConfigName(opts.EnvFile)
		v.SetConfigType("env")

		currentPath, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}

		v.AddConfigPath(currentPath)

		if err := v.ReadInConfig(); err != nil {
			// It's okay if config file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	// Read environment variables
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	secretKey := v.GetString("SECRET_KEY")
	if secretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY is required")
	}

	// The webhook signing secret falls back to the session secret so a bare
	// environment still produces verifiable payloads.
	webhookSecret := v.GetString("WEBHOOK_SECRET")
	if webhookSecret == "" {
		webhookSecret = secretKey
	}

	latencyMin := v.GetInt("STORE_LATENCY_MIN_MS")
	latencyMax := v.GetInt("STORE_LATENCY_MAX_MS")
	if latencyMin < 0 || latencyMax < latencyMin {
		return nil, fmt.Errorf("invalid store latency window: min=%dms max=%dms", latencyMin, latencyMax)
	}

	config := &Config{
		Server: ServerConfig{
			Port: v.GetInt("SERVER_PORT"),
			Host: v.GetString("SERVER_HOST"),
		},
		Store: StoreConfig{
			LatencyMin: time.Duration(latencyMin) * time.Millisecond,
			LatencyMax: time.Duration(latencyMax) * time.Millisecond,
			SeedDemo:   v.GetBool("SEED_DEMO_DATA"),
		},
		SMTP: SMTPConfig{
			Host:      v.GetString("SMTP_HOST"),
			Port:      v.GetInt("SMTP_PORT"),
			Username:  v.GetString("SMTP_USERNAME"),
			Password:  v.GetString("SMTP_PASSWORD"),
			FromEmail: v.GetString("SMTP_FROM_EMAIL"),
			FromName:  v.GetString("SMTP_FROM_NAME"),
			Enabled:   v.GetBool("SMTP_ENABLED"),
		},
		Webhook: WebhookConfig{
			Secret: webhookSecret,
		},
		SecretKey:   secretKey,
		Environment: v.GetString("ENVIRONMENT"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		Version:     v.GetString("VERSION"),
	}

	return config, nil
}

// IsDevelopment returns true when running in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
