package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	UsersTable string
	LogLevel   logrus.Level
	Sync       SyncConfig
}

// SyncConfig points at the search index that receives every committed
// artist record. An empty URL disables publishing.
type SyncConfig struct {
	URL       string
	AuthToken string
	Timeout   time.Duration
}

var loadEnv = godotenv.Load

func Load() (Config, error) {
	// A missing .env is normal outside local runs.
	if err := loadEnv(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	level, err := logrus.ParseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	timeout, err := time.ParseDuration(getEnv("SYNC_TIMEOUT", "5s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid SYNC_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return Config{}, fmt.Errorf("invalid SYNC_TIMEOUT: must be positive")
	}

	return Config{
		UsersTable: getEnv("USERS_TABLE", "Users"),
		LogLevel:   level,
		Sync: SyncConfig{
			URL:       os.Getenv("SEARCH_SYNC_URL"),
			AuthToken: os.Getenv("SEARCH_SYNC_TOKEN"),
			Timeout:   timeout,
		},
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
