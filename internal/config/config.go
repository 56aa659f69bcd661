package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int
	LogLevel           string
	AccessLogPath      string
	CORSAllowedOrigins []string
	Database           DatabaseConfig
}

// DatabaseConfig describes how to reach the relational store.
type DatabaseConfig struct {
	Driver   string // "postgres" or "sqlite"
	URL      string // Full DSN, takes precedence over the individual parts
	Host     string
	Port     int
	Name     string
	User     string
	Password string
	SSLMode  string
	Path     string // SQLite file path
}

// DSN returns the data source name for the configured driver.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	if c.Driver == "sqlite" {
		return c.Path
	}
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     c.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.SSLMode),
	}
	return u.String()
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first when present; real
// environment variables always win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "5003"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	driver := getEnv("DB_DRIVER", "postgres")
	if driver != "postgres" && driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return &Config{
		ServerPort:         port,
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		AccessLogPath:      getEnv("ACCESS_LOG_PATH", "./access.log"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		Database: DatabaseConfig{
			Driver:   driver,
			URL:      getEnv("DATABASE_URL", ""),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			Name:     getEnv("DB_NAME", "my_database"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "root"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DATABASE_PATH", "./tasks.db"),
		},
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
