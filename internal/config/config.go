package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	APIBaseURL string
	RedisAddr  string
	RedisPwd   string
	SessionTTL time.Duration
	LogFile    string
}

func Load() Config {
	// A missing .env is fine; values may come from the environment directly.
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	base := os.Getenv("API_BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8000"
	}
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "127.0.0.1:6379"
	}

	ttl := 24 * time.Hour
	if s := os.Getenv("SESSION_TTL_SECONDS"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}

	cfg := Config{
		Port:       port,
		APIBaseURL: base,
		RedisAddr:  redisAddr,
		RedisPwd:   os.Getenv("REDIS_PASSWORD"),
		SessionTTL: ttl,
		LogFile:    os.Getenv("LOG_FILE"),
	}
	log.Printf("[config] PORT=%s API_BASE_URL=%s REDIS_ADDR=%s SESSION_TTL=%s", cfg.Port, cfg.APIBaseURL, cfg.RedisAddr, cfg.SessionTTL)
	return cfg
}
