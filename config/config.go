package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every tunable of the schedule engine.
type Config struct {
	PoolCount        int
	PoolSize         int
	AdvancersPerPool int
	TiebreakSeed     int64
	DrawSeed         int64
	ExportDir        string
	LogLevel         string
	LogFormat        string
}

// Load reads configuration from environment variables, optionally
// seeded from a .env file. Every variable has a usable default.
func Load() (*Config, error) {
	// A missing .env file is fine; the environment still applies.
	_ = godotenv.Load()

	poolCount, err := intEnv("POOL_COUNT", 2)
	if err != nil {
		return nil, err
	}
	if poolCount < 1 {
		return nil, fmt.Errorf("POOL_COUNT must be at least 1, got %d", poolCount)
	}

	poolSize, err := intEnv("POOL_SIZE", 4)
	if err != nil {
		return nil, err
	}
	if poolSize < 2 {
		return nil, fmt.Errorf("POOL_SIZE must be at least 2, got %d", poolSize)
	}

	advancers, err := intEnv("ADVANCERS_PER_POOL", 2)
	if err != nil {
		return nil, err
	}
	if advancers < 1 || advancers > poolSize {
		return nil, fmt.Errorf("ADVANCERS_PER_POOL must be between 1 and POOL_SIZE (%d), got %d", poolSize, advancers)
	}

	tiebreakSeed, err := int64Env("TIEBREAK_SEED", 1)
	if err != nil {
		return nil, err
	}
	drawSeed, err := int64Env("DRAW_SEED", 42)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		PoolCount:        poolCount,
		PoolSize:         poolSize,
		AdvancersPerPool: advancers,
		TiebreakSeed:     tiebreakSeed,
		DrawSeed:         drawSeed,
		ExportDir:        stringEnv("EXPORT_DIR", "exports"),
		LogLevel:         stringEnv("LOG_LEVEL", "info"),
		LogFormat:        stringEnv("LOG_FORMAT", "json"),
	}
	return cfg, nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return parsed, nil
}

func int64Env(key string, fallback int64) (int64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", key, err)
	}
	return parsed, nil
}
