package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabasePath    string
	DatabaseURL     string
	SessionSecret   string
	SessionDuration time.Duration
	UploadMaxSize   int64

	// Demo account seeded on first run
	DemoEmail    string
	DemoPassword string

	// Email (Amazon SES); email sending is disabled when FromEmail is empty
	AWSRegion      string
	SESFromEmail   string
	SESFromName    string
	AppBaseURL     string
	ReportInterval time.Duration

	// Mock AI pipeline delays (set to 0 in tests)
	AIDelay time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		DatabaseType:    getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:    getEnv("DB_PATH", "./homeworkhub.db"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		SessionSecret:   getEnv("SESSION_SECRET", "homeworkhub-dev-secret"),
		SessionDuration: getEnvDuration("SESSION_DURATION", 24*time.Hour),
		UploadMaxSize:   getEnvInt64("UPLOAD_MAX_SIZE", 10*1024*1024), // 10MB

		DemoEmail:    getEnv("DEMO_EMAIL", "parent@example.com"),
		DemoPassword: getEnv("DEMO_PASSWORD", "homework123"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:   getEnv("SES_FROM_EMAIL", ""),
		SESFromName:    getEnv("SES_FROM_NAME", "HomeworkHub"),
		AppBaseURL:     getEnv("APP_BASE_URL", "http://localhost:8080"),
		ReportInterval: getEnvDuration("REPORT_INTERVAL", 7*24*time.Hour),

		AIDelay: getEnvDuration("AI_DELAY", 2*time.Second),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvInt64 reads an integer environment variable or returns a default value
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}
