package config

import (
	"errors"
	"os"
	"strconv"
)

// Minimum length of the JWT signing secret in bytes. Anything shorter is too
// easy to brute-force for an HS256 key.
const minSecretLength = 32

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	JWTSecret    []byte
	LogLevel     string
	CORSOrigin   string
}

// Load loads configuration from environment variables or sets defaults.
// The JWT secret has no default: the process refuses to start without a
// properly sized secret rather than falling back to a guessable literal.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	if len(secret) < minSecretLength {
		return nil, errors.New("JWT_SECRET must be at least 32 bytes")
	}

	return &Config{
		ServerPort:   port,
		DatabasePath: getEnv("DATABASE_PATH", "./billpay-auth.db"),
		JWTSecret:    []byte(secret),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		CORSOrigin:   getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
