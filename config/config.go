// Package config handles loading and validation of application configuration
// from environment variables.
package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"

	"github.com/filebright/filebright-backend/logger"
)

// Environment represents the application's running environment.
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT"`
	Port           string      `mapstructure:"PORT"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS"`
	Version        string      `mapstructure:"VERSION"`
	// TrustedProxies is a list of CIDR ranges or IPs of trusted reverse
	// proxies. If empty, X-Forwarded-For headers are ignored entirely.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`
}

// DatabaseConfig holds PostgreSQL connection details.
type DatabaseConfig struct {
	Host     string `mapstructure:"HOST"`
	Port     int    `mapstructure:"PORT"`
	User     string `mapstructure:"USER"`
	Password string `mapstructure:"PASSWORD"`
	Name     string `mapstructure:"NAME"`
	SSLMode  string `mapstructure:"SSL_MODE"`
	MaxConns int    `mapstructure:"MAX_CONNS"`
}

// URL returns a postgres:// connection URL.
func (c *DatabaseConfig) URL() string {
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		c.Name,
		sslmode,
	)
}

// StorageConfig selects and parameterizes the file storage backend.
type StorageConfig struct {
	// Backend is "local" or "s3".
	Backend           string `mapstructure:"BACKEND"`
	LocalPath         string `mapstructure:"LOCAL_PATH"`
	S3Region          string `mapstructure:"S3_REGION"`
	S3Bucket          string `mapstructure:"S3_BUCKET"`
	S3Endpoint        string `mapstructure:"S3_ENDPOINT"`
	S3AccessKeyID     string `mapstructure:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `mapstructure:"S3_SECRET_ACCESS_KEY"`
}

// OCRConfig holds the Azure Document Intelligence connection and polling
// parameters.
type OCRConfig struct {
	Endpoint            string `mapstructure:"ENDPOINT"`
	APIKey              string `mapstructure:"API_KEY"`
	PollIntervalSeconds int    `mapstructure:"POLL_INTERVAL_SECONDS"`
	MaxPolls            int    `mapstructure:"MAX_POLLS"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"SERVER"`
	Database DatabaseConfig `mapstructure:"DATABASE"`
	Storage  StorageConfig  `mapstructure:"STORAGE"`
	OCR      OCRConfig      `mapstructure:"OCR"`
}

// LoadConfig reads configuration from the environment with development
// defaults and validates it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.TRUSTED_PROXIES", []string{})
	v.SetDefault("SERVER.VERSION", "dev")
	v.SetDefault("DATABASE.HOST", "localhost")
	v.SetDefault("DATABASE.PORT", 5432)
	v.SetDefault("DATABASE.USER", "postgres")
	v.SetDefault("DATABASE.PASSWORD", "")
	v.SetDefault("DATABASE.NAME", "filebright_dev")
	v.SetDefault("DATABASE.SSL_MODE", "disable")
	v.SetDefault("DATABASE.MAX_CONNS", 10)
	v.SetDefault("STORAGE.BACKEND", "local")
	v.SetDefault("STORAGE.LOCAL_PATH", "./data/documents")
	v.SetDefault("OCR.POLL_INTERVAL_SECONDS", 2)
	v.SetDefault("OCR.MAX_POLLS", 30)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.TRUSTED_PROXIES", "TRUSTED_PROXIES"},
		{"SERVER.VERSION", "VERSION"},
		{"DATABASE.HOST", "DB_HOST"},
		{"DATABASE.PORT", "DB_PORT"},
		{"DATABASE.USER", "DB_USER"},
		{"DATABASE.PASSWORD", "DB_PASSWORD"},
		{"DATABASE.NAME", "DB_NAME"},
		{"DATABASE.SSL_MODE", "DB_SSL_MODE"},
		{"DATABASE.MAX_CONNS", "DB_MAX_CONNS"},
		{"STORAGE.BACKEND", "STORAGE_BACKEND"},
		{"STORAGE.LOCAL_PATH", "STORAGE_LOCAL_PATH"},
		{"STORAGE.S3_REGION", "STORAGE_S3_REGION"},
		{"STORAGE.S3_BUCKET", "STORAGE_S3_BUCKET"},
		{"STORAGE.S3_ENDPOINT", "STORAGE_S3_ENDPOINT"},
		{"STORAGE.S3_ACCESS_KEY_ID", "STORAGE_S3_ACCESS_KEY_ID"},
		{"STORAGE.S3_SECRET_ACCESS_KEY", "STORAGE_S3_SECRET_ACCESS_KEY"},
		{"OCR.ENDPOINT", "OCR_ENDPOINT"},
		{"OCR.API_KEY", "OCR_API_KEY"},
		{"OCR.POLL_INTERVAL_SECONDS", "OCR_POLL_INTERVAL_SECONDS"},
		{"OCR.MAX_POLLS", "OCR_MAX_POLLS"},
	}
	for _, binding := range envBindings {
		if err := v.BindEnv(binding[0], binding[1]); err != nil {
			return nil, fmt.Errorf("binding %s: %w", binding[0], err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Infow("Configuration loaded",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"storageBackend", cfg.Storage.Backend,
		"database", logger.MaskConnectionString(cfg.Database.URL()),
	)
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "local":
		if c.Storage.LocalPath == "" {
			return fmt.Errorf("STORAGE_LOCAL_PATH is required for the local storage backend")
		}
	case "s3":
		if c.Storage.S3Bucket == "" || c.Storage.S3Region == "" {
			return fmt.Errorf("STORAGE_S3_BUCKET and STORAGE_S3_REGION are required for the s3 storage backend")
		}
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}

	if c.Server.Environment == EnvProduction {
		if c.OCR.Endpoint == "" || c.OCR.APIKey == "" {
			return fmt.Errorf("OCR_ENDPOINT and OCR_API_KEY are required in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required in production")
		}
	}
	return nil
}
