// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"time"
)

type Config struct {
	ServiceName string
	HTTPAddr    string

	// DBDriver selects the storage backend: "mysql" or "sqlite".
	DBDriver   string
	MySQLDSN   string
	SQLitePath string

	// RedisAddr enables the catalog cache when non-empty.
	RedisAddr string
	CacheTTL  time.Duration

	JWTSecret string
	TokenTTL  time.Duration
}

func Load() Config {
	return Config{
		ServiceName: getEnv("SERVICE_NAME", "storefront"),
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		DBDriver:    getEnv("DB_DRIVER", "mysql"),
		MySQLDSN:    getEnv("MYSQL_DSN", "root:root@tcp(localhost:3306)/storefront?parseTime=false"),
		SQLitePath:  getEnv("SQLITE_PATH", "./data/storefront.db"),
		RedisAddr:   getEnv("REDIS_ADDR", ""),
		CacheTTL:    getDuration("CACHE_TTL", 5*time.Minute),
		JWTSecret:   getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTL:    getDuration("TOKEN_TTL", 7*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
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
