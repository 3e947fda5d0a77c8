// Package config loads and validates service configuration from the
// environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server      ServerConfig
	Store       StoreConfig
	Sources     SourcesConfig
	Aggregation AggregationConfig
	Redis       RedisConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StoreConfig struct {
	// SeedSampleData controls whether the fixed sample rows are loaded at
	// startup. The stores are memory-only either way; state resets on
	// restart.
	SeedSampleData bool
}

type SourcesConfig struct {
	// Seeds for the two bank stubs. A zero seed makes the stub derive one
	// from the clock, which is fine for demos but not for reproducible runs.
	FirstNationalSeed  int64
	CommunityTrustSeed int64
}

type AggregationConfig struct {
	RunOnStart bool
	// Interval between scheduled aggregation runs. Zero disables the
	// background runner; aggregation can still be triggered over HTTP.
	Interval time.Duration
}

type RedisConfig struct {
	// URL empty means Redis is not used: rate limiting and summary caching
	// are skipped and the service runs with no external dependencies.
	URL      string
	Password string
	DB       int
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Store: StoreConfig{
			SeedSampleData: getBoolEnv("SEED_SAMPLE_DATA", true),
		},
		Sources: SourcesConfig{
			FirstNationalSeed:  getInt64Env("SOURCE_FIRSTNATIONAL_SEED", 0),
			CommunityTrustSeed: getInt64Env("SOURCE_COMMUNITYTRUST_SEED", 0),
		},
		Aggregation: AggregationConfig{
			RunOnStart: getBoolEnv("AGGREGATION_RUN_ON_START", false),
			Interval:   getDurationEnv("AGGREGATION_INTERVAL", 0),
		},
		Redis: RedisConfig{
			URL:      normalizeRedisURL(getEnv("REDIS_URL", "")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
