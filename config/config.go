// Package config loads the server configuration from the environment, with
// an optional .env file for local development.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the composition root needs to wire the server.
// Optional integrations (Postgres, Redis, RabbitMQ) stay disabled when their
// URL is empty.
type Config struct {
	ListenAddr string

	JWTSecret string
	TokenTTL  time.Duration

	PostgresURL string
	RedisURL    string
	RabbitURL   string

	SettlementExchange string

	StartingChips int
	DailyReward   int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	godotenv.Load()

	cfg := &Config{
		ListenAddr:         getEnv("LISTEN_ADDR", ":8080"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           getEnvDuration("TOKEN_TTL", 24*time.Hour),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		RedisURL:           os.Getenv("REDIS_URL"),
		RabbitURL:          os.Getenv("RABBITMQ_URL"),
		SettlementExchange: getEnv("SETTLEMENT_EXCHANGE", "poker.settlements"),
		StartingChips:      getEnvInt("STARTING_CHIPS", 10_000),
		DailyReward:        getEnvInt("DAILY_REWARD", 1_000),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
