package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Env holds runtime configuration read from the environment.
type Env struct {
	DBPath       string
	APIPort      int
	Seed         int64
	GameSpeed    float64
	BalanceFile  string
	TickInterval time.Duration
}

// LoadEnv reads environment variables and .env (if present).
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		DBPath:       getEnv("CAFESIM_DB", "data/cafesim.db"),
		APIPort:      getInt("CAFESIM_API_PORT", 8080),
		Seed:         getInt64("CAFESIM_SEED", 42),
		GameSpeed:    getFloat("CAFESIM_SPEED", 1.0),
		BalanceFile:  os.Getenv("CAFESIM_BALANCE"),
		TickInterval: getDuration("CAFESIM_TICK_INTERVAL", time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
