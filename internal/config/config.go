package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Menu     MenuConfig
	Policy   PolicyConfig
	Redis    RedisConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Keys accepted on the out-of-stock admin routes
}

type CORSConfig struct {
	AllowOrigins []string
}

type MenuConfig struct {
	Path string // Empty means the embedded catalog
}

type PolicyConfig struct {
	MaxQtyPerLine int
	MaxTotalItems int
}

// RedisConfig selects the shared out-of-stock store; an empty Addr keeps it in memory
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	OOSKey   string
}

// Load reads configuration from a .env file, if any, and environment variables
func Load() (*Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. Variables already set in the
// environment win over the file.
func LoadFile(path string) (*Config, error) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8000"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"crew"}),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsSlice("ALLOW_ORIGINS", []string{"http://127.0.0.1:5500", "http://localhost:5500"}),
		},
		Menu: MenuConfig{
			Path: getEnv("MENU_PATH", ""),
		},
		Policy: PolicyConfig{
			MaxQtyPerLine: getEnvAsInt("MAX_QTY_PER_LINE", 10),
			MaxTotalItems: getEnvAsInt("MAX_TOTAL_ITEMS", 30),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			OOSKey:   getEnv("REDIS_OOS_KEY", "drive:oos"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	if c.Policy.MaxQtyPerLine <= 0 {
		return fmt.Errorf("MAX_QTY_PER_LINE must be positive, got %d", c.Policy.MaxQtyPerLine)
	}
	if c.Policy.MaxTotalItems < c.Policy.MaxQtyPerLine {
		return fmt.Errorf("MAX_TOTAL_ITEMS (%d) must be at least MAX_QTY_PER_LINE (%d)", c.Policy.MaxTotalItems, c.Policy.MaxQtyPerLine)
	}

	if c.Redis.Addr != "" && c.Redis.OOSKey == "" {
		return fmt.Errorf("REDIS_OOS_KEY is required when REDIS_ADDR is set")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
