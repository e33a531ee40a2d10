package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Service identity, reported by the health endpoint.
	ServiceName    string
	ServiceVersion string
	Contact        string

	// AI translation collaborator
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string
	AITimeout     time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// Get values from environment variables with defaults
	config := &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Identity
		ServiceName:    getEnv("SERVICE_NAME", "taxinator-backend"),
		ServiceVersion: getEnv("SERVICE_VERSION", "0.1.0"),
		Contact:        getEnv("SERVICE_CONTACT", "middleware-team@example.com"),

		// AI collaborator. Two key names are accepted because upstream
		// deployments have shipped both spellings.
		OpenAIAPIKey:  getEnvAny([]string{"OPENAI_API_KEY", "OPEN_AI_KEY"}, ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4.1-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
	}

	// Parse AI call timeout
	timeoutStr := getEnv("AI_TIMEOUT", "30s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid AI_TIMEOUT value '%s', falling back to 30s\n", timeoutStr)
		timeout = 30 * time.Second
	}
	config.AITimeout = timeout

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAny returns the first non-empty value among the given keys.
func getEnvAny(keys []string, defaultValue string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}
