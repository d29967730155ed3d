package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds env-driven settings for the host application. Engine
// thresholds live in internal/constants and are not configuration.
type Config struct {
	Port        string
	DatabaseURL string // MySQL DSN for the persistence collaborator; empty = static data only

	// External clients
	GoogleMapsAPIKey string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAITimeout    time.Duration

	// Analysis engine
	WorkerCount int

	// Default pricing settings applied when a request omits them
	DefaultVATRate      float64
	DefaultTargetMargin float64
	DefaultLaborPct     float64

	// Logging
	LogLevel  string
	LogFormat string // "json" or "text"

	// Graceful shutdown budget
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment with sensible defaults.
func Load() *Config {
	workerCount, _ := strconv.Atoi(getEnv("WORKER_COUNT", "8"))
	vatRate, _ := strconv.ParseFloat(getEnv("DEFAULT_VAT_RATE", "20"), 64)
	targetMargin, _ := strconv.ParseFloat(getEnv("DEFAULT_TARGET_MARGIN", "65"), 64)
	laborPct, _ := strconv.ParseFloat(getEnv("DEFAULT_LABOR_PCT", "30"), 64)
	openAITimeoutSec, _ := strconv.Atoi(getEnv("OPENAI_TIMEOUT_SECONDS", "30"))
	shutdownSec, _ := strconv.Atoi(getEnv("SHUTDOWN_TIMEOUT_SECONDS", "10"))

	if workerCount < 1 {
		workerCount = 1
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		GoogleMapsAPIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITimeout:    time.Duration(openAITimeoutSec) * time.Second,

		WorkerCount: workerCount,

		DefaultVATRate:      vatRate,
		DefaultTargetMargin: targetMargin,
		DefaultLaborPct:     laborPct,

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		ShutdownTimeout: time.Duration(shutdownSec) * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
