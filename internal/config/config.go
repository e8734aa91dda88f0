package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	AI        AIConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig holds the persistence backend settings. An empty URL
// selects the in-memory persister (dev mode, no durability).
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds JWT and seed-account settings.
type AuthConfig struct {
	JWTSecret     string
	AdminUser     string
	AdminPassword string
}

// AIConfig holds settings for the analysis agent.
type AIConfig struct {
	OpenAIKey string
}

// SchedulerConfig holds the low-stock digest schedule.
type SchedulerConfig struct {
	LowStockCron string
}

// Load reads environment variables (optionally from the provided file)
// and materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getenvWithDefault("SERVER_PORT", "8080"),
			AllowedOrigins: splitOrigins(os.Getenv("ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			AdminUser:     getenvWithDefault("ADMIN_USER", "admin"),
			AdminPassword: getenvWithDefault("ADMIN_PASSWORD", "admin123"),
		},
		AI: AIConfig{
			OpenAIKey: os.Getenv("OPENAI_API_KEY"),
		},
		Scheduler: SchedulerConfig{
			LowStockCron: getenvWithDefault("LOW_STOCK_CRON", "0 9 * * *"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT must be provided")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	return nil
}

func splitOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
