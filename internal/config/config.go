package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DatabaseURL string

	// Kafka
	KafkaBrokers string

	// API Configuration
	APIPort string
	APIHost string

	// Upstream commerce API
	WCAPIURL    string
	WCAPIKey    string
	WCAPISecret string

	// Shared secret checked against the Peleman-Auth header
	AuthKey string

	// Image uploads
	UploadDir string

	// Localization
	DefaultLanguage string

	// Environment
	Env      string
	LogLevel string
}

func Load() (*Config, error) {
	// Load .env file
	godotenv.Load()

	return &Config{
		DatabaseURL:     getEnv("DATABASE_URL", "sqlite://uploader.db"),
		KafkaBrokers:    getEnv("KAFKA_BROKERS", ""),
		APIPort:         getEnv("API_PORT", "8080"),
		APIHost:         getEnv("API_HOST", "0.0.0.0"),
		WCAPIURL:        getEnv("WC_API_URL", "http://localhost/wp-json/wc/v3"),
		WCAPIKey:        getEnv("WC_API_KEY", ""),
		WCAPISecret:     getEnv("WC_API_SECRET", ""),
		AuthKey:         getEnv("PELEMAN_AUTH_KEY", ""),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		Env:             getEnv("ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
