package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"vozdobairro.com/voz-do-bairro/ranking"
)

// Config holds everything the server reads from the environment. A .env
// file is honored when present; real environment variables win.
type Config struct {
	Port        string
	DatabaseURL string
	Storage     string // "postgres" or "memory"
	JWTSecret   string

	Ranking ranking.Config
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	rcfg := ranking.DefaultConfig()
	rcfg.DefaultLimit = getEnvInt("RANKING_LIMIT", rcfg.DefaultLimit)
	rcfg.DefaultWindowDays = getEnvInt("RANKING_WINDOW_DAYS", rcfg.DefaultWindowDays)
	rcfg.SuperThreshold = getEnvInt("TIER_SUPER_THRESHOLD", rcfg.SuperThreshold)
	rcfg.ActiveThreshold = getEnvInt("TIER_ACTIVE_THRESHOLD", rcfg.ActiveThreshold)

	return &Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		Storage:     getEnv("STORAGE", "postgres"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		Ranking:     rcfg,
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %d", key, value, fallback)
		return fallback
	}
	return n
}
