package config

import (
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит конфигурацию приложения.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenExpiration time.Duration
}

// Load загружает конфигурацию из .env, флагов командной строки и
// переменных окружения. Приоритет: переменные окружения > флаги >
// значения по умолчанию.
func Load() *Config {
	// .env не обязателен: ошибки загрузки игнорируются
	_ = godotenv.Load()

	cfg := &Config{}

	var tokenExp string
	flag.StringVar(&cfg.RunAddress, "a", "localhost:8080", "адрес и порт запуска сервиса")
	flag.StringVar(&cfg.DatabaseURI, "d", "", "строка подключения к PostgreSQL")
	flag.StringVar(&tokenExp, "t", "", "время жизни токена (например 24h)")
	flag.Parse()

	if envRunAddr := os.Getenv("RUN_ADDRESS"); envRunAddr != "" {
		cfg.RunAddress = envRunAddr
	}
	if envDBURI := os.Getenv("DATABASE_URI"); envDBURI != "" {
		cfg.DatabaseURI = envDBURI
	}

	// JWT секрет
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "default-secret-change-in-production"
	}

	// Время жизни токена
	cfg.TokenExpiration = 24 * time.Hour
	if tokenExp != "" {
		if d, err := time.ParseDuration(tokenExp); err == nil && d > 0 {
			cfg.TokenExpiration = d
		}
	}
	if envExp := os.Getenv("TOKEN_EXPIRATION"); envExp != "" {
		if d, err := time.ParseDuration(envExp); err == nil && d > 0 {
			cfg.TokenExpiration = d
		}
	}

	return cfg
}
