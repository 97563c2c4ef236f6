package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"xisbn/internal/platform/xisbn"
)

type config struct {
	Addr           string
	BaseURL        string
	Timeout        time.Duration
	UserAgent      string
	Lenient        bool
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

func loadEnvFiles() {
	// Do not override environment provided by the runtime (e.g. Docker).
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")
}

func loadConfig() config {
	return config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		BaseURL:        getEnv("XISBN_BASE_URL", xisbn.DefaultBaseURL),
		Timeout:        getEnvDuration("XISBN_TIMEOUT", xisbn.DefaultTimeout),
		UserAgent:      getEnv("XISBN_USER_AGENT", xisbn.DefaultUserAgent),
		Lenient:        getEnv("XISBN_LENIENT", "false") == "true",
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 20),
		MaxBodyBytes:   64 << 10,
	}
}

func (c config) clientOptions() []xisbn.Option {
	opts := []xisbn.Option{
		xisbn.WithBaseURL(c.BaseURL),
		xisbn.WithTimeout(c.Timeout),
		xisbn.WithUserAgent(c.UserAgent),
		xisbn.WithLogger(log.Default()),
	}
	if c.Lenient {
		opts = append(opts, xisbn.WithPrefixMatching())
	}
	return opts
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f <= 0 {
		log.Printf("invalid %s=%q, using %v", key, v, def)
		return def
	}
	return f
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}
