package config

import (
	"os"
	"strconv"
	"time"
)

// Config for the roomates web frontend.
type Config struct {
	HTTP struct {
		Addr string
	}
	API struct {
		BaseURL string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	Session struct {
		TTL      time.Duration
		AdminTTL time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	AppEnv string
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	// Development default matches a locally-run backend; production sets an
	// absolute URL for the deployed API.
	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:8000")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	// Sessions live for a month; the cached admin password only for the
	// visit (sessionStorage analog).
	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "720h"), 720*time.Hour)
	cfg.Session.AdminTTL = parseDuration(getEnv("ADMIN_CACHE_TTL", "30m"), 30*time.Minute)

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")
	cfg.AppEnv = getEnv("APP_ENV", "development")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
