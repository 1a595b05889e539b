package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	Environment string
	LogLevel    string

	// Database (optional, runtime tuning overrides)
	DatabaseURL    string
	MigrateOnStart bool

	// Redis (optional, snapshot cache and event relay)
	RedisURL string

	// Server
	Port        string
	FrontendURL string

	// Table Settings
	TableIdleMinutes   int
	SnapshotTTLMinutes int
	InputQueueSize     int
	BroadcastEvery     int
	PhysicsConfigPath  string

	// Security
	JWTSecret            string
	TableTokenTTLMinutes int
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	return &Config{
		// Environment
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Database
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),

		// Redis
		RedisURL: getEnv("REDIS_URL", ""),

		// Server
		Port:        getEnv("APP_PORT", "8080"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		// Table Settings
		TableIdleMinutes:   getEnvInt("TABLE_IDLE_MINUTES", 30),
		SnapshotTTLMinutes: getEnvInt("SNAPSHOT_TTL_MINUTES", 60),
		InputQueueSize:     getEnvInt("INPUT_QUEUE_SIZE", 64),
		BroadcastEvery:     getEnvInt("BROADCAST_EVERY", 2),
		PhysicsConfigPath:  getEnv("PHYSICS_CONFIG", ""),

		// Security
		JWTSecret:            getEnv("JWT_SECRET", "change-me-in-production"),
		TableTokenTTLMinutes: getEnvInt("TABLE_TOKEN_TTL_MINUTES", 240),
	}
}

func (c *Config) TableIdleTimeout() time.Duration {
	return time.Duration(c.TableIdleMinutes) * time.Minute
}

func (c *Config) SnapshotTTL() time.Duration {
	return time.Duration(c.SnapshotTTLMinutes) * time.Minute
}

func (c *Config) TableTokenTTL() time.Duration {
	return time.Duration(c.TableTokenTTLMinutes) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
