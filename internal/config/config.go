package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Addr         string        // RELATA_ADDR, default ":8080"
	DBPath       string        // RELATA_DB, default "relata.db"
	AuthToken    string        // RELATA_AUTH_TOKEN, optional
	FunnelsPath  string        // RELATA_FUNNELS, optional; empty uses the embedded catalog
	RedisAddr    string        // RELATA_REDIS_ADDR, optional; enables conversion publishing
	StageTimeout time.Duration // RELATA_STAGE_TIMEOUT, default 5s
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:         envOr("RELATA_ADDR", ":8080"),
		DBPath:       envOr("RELATA_DB", "relata.db"),
		AuthToken:    os.Getenv("RELATA_AUTH_TOKEN"),
		FunnelsPath:  os.Getenv("RELATA_FUNNELS"),
		RedisAddr:    os.Getenv("RELATA_REDIS_ADDR"),
		StageTimeout: envDuration("RELATA_STAGE_TIMEOUT", 5*time.Second),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
