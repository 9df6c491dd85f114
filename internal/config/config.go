package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port            string
	StaticDir       string
	YahooBaseURL    string
	RedisURL        string
	CacheTTLQuote   time.Duration
	UpstreamTimeout time.Duration
	FetchWorkers    int
	RateLimitPerMin int
	LogLevel        string
}

func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		StaticDir:       getEnv("STATIC_DIR", "static"),
		YahooBaseURL:    getEnv("YAHOO_BASE_URL", "https://query1.finance.yahoo.com"),
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		CacheTTLQuote:   getEnvDuration("CACHE_TTL_QUOTE", 60*time.Second),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		FetchWorkers:    getEnvInt("FETCH_WORKERS", 5),
		RateLimitPerMin: getEnvInt("RATE_LIMIT_PER_MIN", 120),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(i) * time.Second
}
