// Package config centralises environment configuration for the engine.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures every runtime setting, read from the environment with
// defaults that suit local development.
type Config struct {
	Port string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	RankingInterval time.Duration

	RateLimit  int
	RateWindow time.Duration
}

// Load reads environment variables into Config. Optional backends stay
// unset unless their variables are present: no DB_NAME means the in-memory
// store, no REDIS_HOST means no cache or rate limiting, no KAFKA_BROKERS
// means notifications go to the log.
func Load() Config {
	cfg := Config{
		Port: getEnv("PORT", "8080"),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),

		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		JWTIssuer:   getEnv("JWT_ISSUER", "cadence.identity"),
		JWTDuration: getDurationEnv("JWT_DURATION", 24*time.Hour),

		KafkaTopic: getEnv("KAFKA_TOPIC", ""),

		RankingInterval: getDurationEnv("RANKING_INTERVAL", time.Hour),

		RateLimit:  getIntEnv("RATE_LIMIT", 100),
		RateWindow: getDurationEnv("RATE_WINDOW", time.Minute),
	}

	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}

	return cfg
}

// DatabaseConfigured reports whether a Postgres connection was requested.
func (c Config) DatabaseConfigured() bool {
	return c.DBName != ""
}

func (c Config) RedisConfigured() bool {
	return c.RedisHost != ""
}

func (c Config) KafkaConfigured() bool {
	return len(c.KafkaBrokers) > 0
}

// DatabaseDSN renders the connection string for the pgx stdlib driver.
func (c Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}
