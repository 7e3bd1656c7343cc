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

	// JWT verification. The hosted identity provider signs tokens; the API
	// only verifies them with this shared secret.
	JWTSecret string
	JWTIssuer string

	// Client core
	DataDir        string
	APIBaseURL     string
	APIToken       string
	RequestTimeout time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:       getEnv("PORT", "8080"),
		JWTSecret:  getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		JWTIssuer:  getEnv("JWT_ISSUER", "fintrack-idp"),
		DataDir:    getEnv("DATA_DIR", defaultDataDir()),
		APIBaseURL: getEnv("API_BASE_URL", ""),
		APIToken:   getEnv("API_TOKEN", ""),
	}

	// Bounded wait on remote calls; there is deliberately no retry.
	timeoutStr := getEnv("REQUEST_TIMEOUT", "10s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		log.Printf("Warning: invalid REQUEST_TIMEOUT value '%s', falling back to 10s\n", timeoutStr)
		timeout = 10 * time.Second
	}
	config.RequestTimeout = timeout

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

// defaultDataDir returns the local-mode data directory under the user's home.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".fintrack"
	}
	return home + "/.fintrack"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
