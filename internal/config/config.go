package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL    string
	ServerPort    string
	SessionSecret string
	DBDSN         string

	LogLevel string
	LogFile  string

	APITimeout time.Duration
	APIRetries int

	// Период фонового обновления снапшота матрицы.
	MatrixRefresh time.Duration
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:    os.Getenv("API_BASE_URL"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		DBDSN:         os.Getenv("DB_DSN"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFile:       os.Getenv("LOG_FILE"),
		APITimeout:    envSeconds("API_TIMEOUT_SECONDS", 15),
		APIRetries:    envInt("API_RETRIES", 3),
		MatrixRefresh: envSeconds("MATRIX_REFRESH_SECONDS", 30),
	}

	if cfg.APIBaseURL == "" {
		log.Fatal("API_BASE_URL is not set")
	}
	if cfg.DBDSN == "" {
		log.Fatal("DB_DSN is not set")
	}
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg
}

func envInt(key string, def int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("ignoring bad %s=%q, using %d", key, raw, def)
		return def
	}
	return n
}

func envSeconds(key string, def int) time.Duration {
	return time.Duration(envInt(key, def)) * time.Second
}
