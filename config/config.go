package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config хранит все конфигурационные параметры приложения.
type Config struct {
	DatabaseURL      string
	DBConnectTimeout time.Duration
	JWTSecretKey     string
	ServerPort       int
	AllowedOrigins   []string

	// NATS_URL пустой - события только пишутся в лог.
	NATSURL string

	// Хранилище снимков рейтинга (Cloudflare R2); без R2_* выгрузка отключена.
	R2AccountID       string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2BucketName      string
	R2PublicBaseURL   string

	// Пустые пути - встроенные таблицы правил.
	RatingRulesPath   string
	CategoryRulesPath string
}

// Load загружает конфигурацию из переменных окружения.
// Опционально подгружает .env файл (полезно для локальной разработки).
func Load() (*Config, error) {
	// Загружаем .env файл, если он есть. Ошибку не считаем фатальной.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	jwtKey := os.Getenv("JWT_SECRET_KEY")
	if jwtKey == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY environment variable is not set")
	}

	portStr := os.Getenv("SERVER_PORT")
	if portStr == "" {
		portStr = "8080" // Порт по умолчанию
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT environment variable: %w", err)
	}
	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT must be between 1 and 65535, got %d", port)
	}

	timeout := 5 * time.Second
	if raw := os.Getenv("DB_CONNECT_TIMEOUT"); raw != "" {
		timeout, err = time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_CONNECT_TIMEOUT environment variable: %w", err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("DB_CONNECT_TIMEOUT must be positive, got %s", timeout)
		}
	}

	cfg := &Config{
		DatabaseURL:       dbURL,
		DBConnectTimeout:  timeout,
		JWTSecretKey:      jwtKey,
		ServerPort:        port,
		AllowedOrigins:    splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		NATSURL:           os.Getenv("NATS_URL"),
		R2AccountID:       os.Getenv("R2_ACCOUNT_ID"),
		R2AccessKeyID:     os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey: os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2BucketName:      os.Getenv("R2_BUCKET_NAME"),
		R2PublicBaseURL:   os.Getenv("R2_PUBLIC_BASE_URL"),
		RatingRulesPath:   os.Getenv("RATING_RULES_PATH"),
		CategoryRulesPath: os.Getenv("CATEGORY_RULES_PATH"),
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
