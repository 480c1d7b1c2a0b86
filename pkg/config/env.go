package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Env holds process-level settings: where the scoring document lives, how
// the store and change feed are reached, and how often to refresh. The
// scoring parameters themselves live in ScoringConfig.
type Env struct {
	LogLevel  string
	LogPretty bool

	ConfigPath string // optional YAML scoring document (seeds the store in dev)
	DBPath     string // sqlite store path
	CachePath  string // last-known-good snapshot cache

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisChannel  string // change-notification channel

	RefreshSpec string // cron spec for the timer-driven refresh
}

// LoadEnv reads process configuration from the environment, loading a
// .env file first when one exists.
func LoadEnv() (*Env, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("PROPSCORE_DATA_DIR", "data")
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absDataDir, 0o755); err != nil {
		return nil, err
	}

	env := &Env{
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogPretty: getEnvAsBool("LOG_PRETTY", false),

		ConfigPath: getEnv("PROPSCORE_CONFIG_PATH", ""),
		DBPath:     getEnv("PROPSCORE_DB_PATH", filepath.Join(absDataDir, "propscore.db")),
		CachePath:  getEnv("PROPSCORE_CACHE_PATH", filepath.Join(absDataDir, "scoring_config.cache")),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		RedisChannel:  getEnv("PROPSCORE_CONFIG_CHANNEL", "propscore:config"),

		RefreshSpec: getEnv("PROPSCORE_REFRESH_SPEC", "@every 5m"),
	}

	return env, nil
}

// RefreshInterval parses the refresh spec when it uses the @every form,
// falling back to the 5 minute default.
func (e *Env) RefreshInterval() time.Duration {
	const prefix = "@every "
	if len(e.RefreshSpec) > len(prefix) && e.RefreshSpec[:len(prefix)] == prefix {
		if d, err := time.ParseDuration(e.RefreshSpec[len(prefix):]); err == nil {
			return d
		}
	}
	return 5 * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
