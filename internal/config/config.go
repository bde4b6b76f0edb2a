package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	JWTSecret string
	TokenTTL  time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	QuestionCacheTTL time.Duration

	// Scoring policy knobs. These feed scoring.Policy so the streak window
	// and multiplier curve can be tuned without touching the algorithm.
	StreakWindow      time.Duration
	MultiplierStep    float64
	MultiplierCap     float64
	DefaultBasePoints int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:     envOr("ADDR", ":8080"),
		DBPath:   envOr("DB_PATH", "file:battleacademy.db"),
		LogLevel: envOr("LOG_LEVEL", "INFO"),

		JWTSecret: envOr("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:  envDurationOr("TOKEN_TTL", 7*24*time.Hour),

		RedisAddr:        envOr("REDIS_ADDR", ""),
		RedisPassword:    envOr("REDIS_PASSWORD", ""),
		RedisDB:          envIntOr("REDIS_DB", 0),
		QuestionCacheTTL: envDurationOr("QUESTION_CACHE_TTL", 10*time.Minute),

		StreakWindow:      envDurationOr("STREAK_WINDOW", 24*time.Hour),
		MultiplierStep:    envFloatOr("MULTIPLIER_STEP", 0.1),
		MultiplierCap:     envFloatOr("MULTIPLIER_CAP", 2.0),
		DefaultBasePoints: envIntOr("DEFAULT_BASE_POINTS", 10),
	}
}

// Validate checks the configuration for values the server cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET cannot be empty")
	}
	if c.StreakWindow <= 0 {
		return fmt.Errorf("STREAK_WINDOW must be positive, got %s", c.StreakWindow)
	}
	if c.MultiplierStep < 0 {
		return fmt.Errorf("MULTIPLIER_STEP cannot be negative, got %g", c.MultiplierStep)
	}
	if c.MultiplierCap < 1 {
		return fmt.Errorf("MULTIPLIER_CAP must be at least 1, got %g", c.MultiplierCap)
	}
	if c.DefaultBasePoints <= 0 {
		return fmt.Errorf("DEFAULT_BASE_POINTS must be positive, got %d", c.DefaultBasePoints)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %g", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
