package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Addr          string        // status API bind address
	LogDir        string        // logs directory
	DatabasePath  string        // sqlite file, e.g. "network_monitor.db"
	CheckInterval time.Duration // between monitoring cycles
	HTTPTimeout   time.Duration // per HTTP probe
	PingTimeout   time.Duration // ping's own wait; subprocess deadline adds margin
	PingCount     int           // echo requests per probe
	RetentionDays int           // results older than this are purged daily
	CleanupAt     string        // daily cleanup wall-clock time, "15:04"
	MaxConcurrent int           // sites evaluated in parallel per cycle
	SlackWebhook  string        // empty disables notifications
	Debug         bool
}

func FromEnv() Config {
	return Config{
		Addr:          getEnv("ADDR", "127.0.0.1:8080"),
		LogDir:        getEnv("LOG_DIR", "logs"),
		DatabasePath:  getEnv("DATABASE_PATH", "network_monitor.db"),
		CheckInterval: getEnvSeconds("CHECK_INTERVAL_SECONDS", 60*time.Second),
		HTTPTimeout:   getEnvSeconds("HTTP_TIMEOUT_SECONDS", 10*time.Second),
		PingTimeout:   getEnvSeconds("PING_TIMEOUT_SECONDS", 5*time.Second),
		PingCount:     getEnvInt("PING_COUNT", 3),
		RetentionDays: getEnvInt("RETENTION_DAYS", 30),
		CleanupAt:     getEnv("CLEANUP_AT", "02:00"),
		MaxConcurrent: getEnvInt("MAX_CONCURRENT_CHECKS", 4),
		SlackWebhook:  getEnv("SLACK_WEBHOOK", ""),
		Debug:         getEnv("DEBUG", "") != "",
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return fallback
}
