package config

import (
	"fmt"
	"github.com/joho/godotenv"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App struct {
		Name string
		Env  string
	}

	API struct {
		Host string
		Port string
	}

	DB struct {
		// Driver selects the storage backend: "sqlite" or "postgres".
		Driver string

		// Path is the SQLite database file location (sqlite driver only).
		Path string

		Host     string
		Port     int
		User     string
		Password string
		Name     string
		SSLMode  string
	}

	Redis struct {
		Addr     string
		Password string
		DB       int
	}

	Webhook struct {
		// Secret is the shared HMAC-SHA256 key for signature verification.
		// When empty, ingestion is rejected and the readiness probe fails.
		Secret string
	}

	Stats struct {
		ReportInterval time.Duration
		ReportTimeout  time.Duration
	}

	Log struct {
		Level string
	}
}

func New() *Config {
	_ = godotenv.Load()

	cfg := &Config{}

	// App
	cfg.App.Name = getEnv("APP_NAME", "lyftr-webhook-api")
	cfg.App.Env = getEnv("APP_ENV", "development")

	// API
	cfg.API.Host = getEnv("API_HOST", "0.0.0.0")
	cfg.API.Port = getEnv("API_PORT", "8080")

	// DB
	cfg.DB.Driver = strings.ToLower(getEnv("DB_DRIVER", "sqlite"))
	cfg.DB.Path = getEnv("DB_PATH", "data/app.db")
	cfg.DB.Host = getEnv("DB_HOST", "db")
	cfg.DB.Port = getInt("DB_PORT", 5432)
	cfg.DB.User = getEnv("DB_USER", "root")
	cfg.DB.Password = getEnv("DB_PASSWORD", "123456")
	cfg.DB.Name = getEnv("DB_NAME", "db_lyftr_messages")
	cfg.DB.SSLMode = getEnv("DB_SSLMODE", "disable")

	// Redis (optional dedupe fast path; empty addr disables it)
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = getInt("REDIS_DB", 0)

	// Webhook
	cfg.Webhook.Secret = getEnv("WEBHOOK_SECRET", "")

	// Stats reporter
	cfg.Stats.ReportInterval = getDuration("STATS_REPORT_INTERVAL", 1*time.Minute)
	cfg.Stats.ReportTimeout = getDuration("STATS_REPORT_TIMEOUT", 10*time.Second)

	// Logging
	cfg.Log.Level = getEnv("LOG_LEVEL", "INFO")

	return cfg
}

func getEnv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DB.Host,
		c.DB.Port,
		c.DB.User,
		c.DB.Password,
		c.DB.Name,
		c.DB.SSLMode,
	)
}
