package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	AppBaseURL      string
	SessionDuration time.Duration

	// Database: sqlite (default), postgres or mysql
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	StaticFilesPath string
	TemplatesPath   string

	// Secret for CSRF tokens and the onboarding draft cookie
	AppSecret string

	// Kakao OAuth login
	KakaoClientID     string
	KakaoClientSecret string

	// Kakao share (Talk message API)
	KakaoShareToken string

	// Email delivery via Amazon SES
	AWSRegion    string
	SESFromEmail string
	SESFromName  string

	// Daily question delivery
	DailySendEnabled bool

	Debug bool
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		AppBaseURL:      getEnv("APP_BASE_URL", "http://localhost:8080"),
		SessionDuration: getDurationEnv("SESSION_DURATION", 24*time.Hour),

		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./maeumbaedal.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),

		AppSecret: getEnv("APP_SECRET", "dev-only-insecure-secret"),

		KakaoClientID:     getEnv("KAKAO_CLIENT_ID", ""),
		KakaoClientSecret: getEnv("KAKAO_CLIENT_SECRET", ""),
		KakaoShareToken:   getEnv("KAKAO_SHARE_TOKEN", ""),

		AWSRegion:    getEnv("AWS_REGION", "ap-northeast-2"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "마음배달"),

		DailySendEnabled: getBoolEnv("DAILY_SEND_ENABLED", true),

		Debug: getBoolEnv("DEBUG", false),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}
