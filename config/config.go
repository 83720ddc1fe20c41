package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"platerental/logger"
)

type Config struct {
	PostgresURL    string
	MongoURL       string
	MongoDB        string
	DBType         string
	Port           string
	MigrationsPath string
	ReceiptDir     string

	// Cloudflare R2, optional; receipts stay local when unset
	R2Bucket          string
	R2AccountID       string
	R2PublicURL       string
	R2AccessKeyID     string
	R2SecretAccessKey string

	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	envErr := godotenv.Load()

	cfg := &Config{
		PostgresURL:       os.Getenv("POSTGRES_URL"),
		MongoURL:          os.Getenv("MONGO_URL"),
		MongoDB:           getEnv("MONGO_DB", "platerental"),
		DBType:            getEnv("DB_TYPE", "postgres"),
		Port:              getEnv("PORT", "8080"),
		MigrationsPath:    getEnv("MIGRATIONS_PATH", "file://db/migrations"),
		ReceiptDir:        getEnv("RECEIPT_DIR", "./receipts"),
		R2Bucket:          os.Getenv("R2_BUCKET"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2PublicURL:       os.Getenv("R2_PUBLIC_URL"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "console"),
		LogTimeFormat:     getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:         getEnv("LOG_OUTPUT", "stdout"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if envErr != nil {
		log := logger.WithComponent("config")
		log.Debug().Msg("No .env file found, using system environment variables")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DBType {
	case "postgres":
		if c.PostgresURL == "" {
			return fmt.Errorf("POSTGRES_URL is required when DB_TYPE=postgres")
		}
	case "mongo":
		if c.MongoURL == "" {
			return fmt.Errorf("MONGO_URL is required when DB_TYPE=mongo")
		}
	default:
		return fmt.Errorf("DB_TYPE %q not supported", c.DBType)
	}
	return nil
}

// R2Enabled reports whether receipt uploads are configured.
func (c *Config) R2Enabled() bool {
	return c.R2Bucket != "" && c.R2AccountID != "" && c.R2PublicURL != ""
}

func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
