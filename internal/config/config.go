package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port            int
	Env             string // development, production
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// RAG Server (class material retrieval); empty URL disables retrieval
	RAGServerURL     string
	RAGServerTimeout time.Duration
	RAGTopK          int

	// OpenAI
	OpenAIAPIKey      string
	OpenAIBaseURL     string
	OpenAIModel       string
	OpenAITemperature float32
	OpenAIMaxTokens   int
	OpenAITimeout     time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is read first when present; real environment wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:              getEnvAsInt("PORT", 3000),
		Env:               getEnv("ENVIRONMENT", "development"),
		ShutdownTimeout:   time.Duration(getEnvAsInt("SHUTDOWN_TIMEOUT_MS", 10000)) * time.Millisecond,
		CORSOrigins:       getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		RAGServerURL:      strings.TrimRight(getEnv("RAG_SERVER_URL", ""), "/"),
		RAGServerTimeout:  time.Duration(getEnvAsInt("RAG_SERVER_TIMEOUT", 5000)) * time.Millisecond,
		RAGTopK:           getEnvAsInt("RAG_TOP_K", 5),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAITemperature: float32(getEnvAsFloat("OPENAI_TEMPERATURE", 0.7)),
		OpenAIMaxTokens:   getEnvAsInt("OPENAI_MAX_TOKENS", 3000),
		OpenAITimeout:     time.Duration(getEnvAsInt("OPENAI_TIMEOUT_MS", 60000)) * time.Millisecond,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.OpenAIAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", cfg.Port)
	}
	if cfg.RAGTopK <= 0 {
		return nil, fmt.Errorf("RAG_TOP_K must be positive, got %d", cfg.RAGTopK)
	}

	return cfg, nil
}

// RetrievalEnabled reports whether a RAG server is configured
func (c *Config) RetrievalEnabled() bool {
	return c.RAGServerURL != ""
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	valStr := getEnv(key, "")
	if val, err := strconv.Atoi(valStr); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsFloat(key string, defaultVal float64) float64 {
	valStr := getEnv(key, "")
	if val, err := strconv.ParseFloat(valStr, 64); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsList(key string, defaultVal []string) []string {
	valStr := strings.TrimSpace(getEnv(key, ""))
	if valStr == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(valStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultVal
	}
	return out
}
