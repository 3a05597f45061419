package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Assistant struct {
		BaseURL string `yaml:"base_url" env:"ASSISTANT_BASE_URL"`
		APIKey  string `yaml:"api_key" env:"ASSISTANT_API_KEY"`
		Model   string `yaml:"model" env:"ASSISTANT_MODEL"`
		Timeout string `yaml:"timeout" env:"ASSISTANT_TIMEOUT"`
	} `yaml:"assistant"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// Read config file if it exists; env vars still apply without one
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults fills the config with sane defaults for local development
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "debug"
	config.Server.StoragePath = "uploads"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "stackit"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 25
	config.Database.ConnMaxLifetime = "1h"

	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "stackit"

	config.Assistant.BaseURL = "https://generativelanguage.googleapis.com"
	config.Assistant.Model = "gemini-1.5-flash"
	config.Assistant.Timeout = "30s"

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

// loadFromEnv overrides config fields from environment variables
func loadFromEnv(config *Config) {
	setString := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(dst *int, key string) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString(&config.Server.Port, "SERVER_PORT")
	setString(&config.Server.Mode, "SERVER_MODE")
	setString(&config.Server.StoragePath, "SERVER_STORAGE_PATH")

	setString(&config.Database.Host, "DB_HOST")
	setString(&config.Database.Port, "DB_PORT")
	setString(&config.Database.User, "DB_USER")
	setString(&config.Database.Password, "DB_PASSWORD")
	setString(&config.Database.DBName, "DB_NAME")
	setString(&config.Database.SSLMode, "DB_SSLMODE")
	setInt(&config.Database.MaxIdleConns, "DB_MAX_IDLE_CONNS")
	setInt(&config.Database.MaxOpenConns, "DB_MAX_OPEN_CONNS")
	setString(&config.Database.ConnMaxLifetime, "DB_CONN_MAX_LIFETIME")

	setString(&config.JWT.Secret, "JWT_SECRET")
	setString(&config.JWT.AccessTokenExpiration, "JWT_ACCESS_TOKEN_EXPIRATION")
	setString(&config.JWT.RefreshTokenExpiration, "JWT_REFRESH_TOKEN_EXPIRATION")
	setString(&config.JWT.Issuer, "JWT_ISSUER")

	setString(&config.Assistant.BaseURL, "ASSISTANT_BASE_URL")
	setString(&config.Assistant.APIKey, "ASSISTANT_API_KEY")
	setString(&config.Assistant.Model, "ASSISTANT_MODEL")
	setString(&config.Assistant.Timeout, "ASSISTANT_TIMEOUT")

	setString(&config.Logging.Level, "LOG_LEVEL")
	setString(&config.Logging.Format, "LOG_FORMAT")
}

// validateConfig checks required fields
func validateConfig(config *Config) error {
	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required (set JWT_SECRET)")
	}
	if config.Database.Host == "" || config.Database.DBName == "" {
		return fmt.Errorf("database host and name are required")
	}
	return nil
}

// GetPostgresConnectionString builds the connection string for pgx
func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}
