package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации API-сервера
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL"`
	HTTPPort       string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"file://migrations"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cache Config
	IncidentCacheTTL  time.Duration `env:"INCIDENT_CACHE_TTL" envDefault:"5m"`
	AnalyticsCacheTTL time.Duration `env:"ANALYTICS_CACHE_TTL" envDefault:"30s"`

	// Alert generation Config
	AlertUrgencyThreshold int           `env:"ALERT_URGENCY_THRESHOLD" envDefault:"8"`
	AlertRetryDelay       time.Duration `env:"ALERT_RETRY_DELAY" envDefault:"5s"`

	// Analytics Config
	TrendWindowDays int `env:"TREND_WINDOW_DAYS" envDefault:"7"`

	// Разрешённые источники для браузерной панели
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*"`
}

// DashboardConfig - настройки клиента панели
type DashboardConfig struct {
	APIBaseURL      string        `env:"API_BASE_URL" envDefault:"http://localhost:8080"`
	RefreshInterval time.Duration `env:"DASHBOARD_REFRESH_INTERVAL" envDefault:"30s"`
	PageSize        int           `env:"DASHBOARD_PAGE_SIZE" envDefault:"50"`
	HTTPTimeout     time.Duration `env:"DASHBOARD_HTTP_TIMEOUT" envDefault:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		MigrationsPath:        getEnv("MIGRATIONS_PATH", "file://migrations"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		IncidentCacheTTL:      getEnvAsDuration("INCIDENT_CACHE_TTL", 5*time.Minute),
		AnalyticsCacheTTL:     getEnvAsDuration("ANALYTICS_CACHE_TTL", 30*time.Second),
		AlertUrgencyThreshold: getEnvAsInt("ALERT_URGENCY_THRESHOLD", 8),
		AlertRetryDelay:       getEnvAsDuration("ALERT_RETRY_DELAY", 5*time.Second),
		TrendWindowDays:       getEnvAsInt("TREND_WINDOW_DAYS", 7),
		CORSOrigins:           getEnvAsList("CORS_ORIGINS", []string{"*"}),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	return cfg, nil
}

// LoadDashboardConfig загружает настройки клиента; обязательных переменных нет
func LoadDashboardConfig() (*DashboardConfig, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := &DashboardConfig{
		APIBaseURL:      strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		RefreshInterval: getEnvAsDuration("DASHBOARD_REFRESH_INTERVAL", 30*time.Second),
		PageSize:        getEnvAsInt("DASHBOARD_PAGE_SIZE", 50),
		HTTPTimeout:     getEnvAsDuration("DASHBOARD_HTTP_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	if cfg.RefreshInterval <= 0 {
		return nil, fmt.Errorf("DASHBOARD_REFRESH_INTERVAL must be positive, got %s", cfg.RefreshInterval)
	}
	if cfg.PageSize < 1 || cfg.PageSize > 100 {
		return nil, fmt.Errorf("DASHBOARD_PAGE_SIZE must be between 1 and 100, got %d", cfg.PageSize)
	}

	return cfg, nil
}

// loadDotEnv загружает переменные окружения из .env файла (если есть)
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}
	return nil
}

// getEnv возвращает значение переменной окружения или значение по умолчанию
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt возвращает значение переменной окружения как int или значение по умолчанию
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsDuration возвращает значение переменной окружения как time.Duration или значение по умолчанию
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
	}
	return defaultValue
}

// getEnvAsList разбирает список через запятую, пустые элементы отбрасываются
func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return defaultValue
	}
	return items
}
