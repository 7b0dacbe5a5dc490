package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	DatabaseURL         string        `env:"DATABASE_URL"`
	DBMaxConns          int32         `env:"DB_MAX_CONNS" envDefault:"10"`
	DBHealthCheckPeriod time.Duration `env:"DB_HEALTH_CHECK_PERIOD" envDefault:"1m"`
	HTTPPort            string        `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel            string        `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass     string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	// Webhook Config (push-шлюз доставки уведомлений)
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Email Config (SES, только для семейных тревог)
	AWSRegion    string `env:"AWS_REGION" envDefault:"eu-west-1"`
	SESFromEmail string `env:"SES_FROM_EMAIL"`
	SESFromName  string `env:"SES_FROM_NAME" envDefault:"Parking Watchdog"`

	// Motion Config
	ParkingSpeedKmh     float64       `env:"PARKING_SPEED_KMH" envDefault:"5"`
	TripStartSpeedKmh   float64       `env:"TRIP_START_SPEED_KMH" envDefault:"10"`
	StationaryThreshold time.Duration `env:"STATIONARY_THRESHOLD" envDefault:"60s"`

	// Check-in Config
	ConfirmationWindow    time.Duration `env:"CONFIRMATION_WINDOW" envDefault:"5m"`
	TimeoutHandlerTimeout time.Duration `env:"TIMEOUT_HANDLER_TIMEOUT" envDefault:"10s"`
	BroadcastConcurrency  int           `env:"BROADCAST_CONCURRENCY" envDefault:"8"`

	// Action tokens для кнопок уведомления
	ActionTokenSecret string        `env:"ACTION_TOKEN_SECRET"`
	ActionTokenTTL    time.Duration `env:"ACTION_TOKEN_TTL" envDefault:"24h"`

	// API Keys for authentication
	APIKeys []string `env:"API_KEYS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("ошибка загрузки файла .env: %w", err)
	}

	cfg := &Config{
		DatabaseURL:           os.Getenv("DATABASE_URL"),
		DBMaxConns:            int32(getEnvAsInt("DB_MAX_CONNS", 10)),
		DBHealthCheckPeriod:   getEnvAsDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
		HTTPPort:              getEnv("HTTP_PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:             os.Getenv("REDIS_PASSWORD"),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		RedisPoolSize:         getEnvAsInt("REDIS_POOL_SIZE", 10),
		WebhookURL:            os.Getenv("WEBHOOK_URL"),
		WebhookSecret:         os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:        getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:     getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:      getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		AWSRegion:             getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:          os.Getenv("SES_FROM_EMAIL"),
		SESFromName:           getEnv("SES_FROM_NAME", "Parking Watchdog"),
		ParkingSpeedKmh:       getEnvAsFloat("PARKING_SPEED_KMH", 5),
		TripStartSpeedKmh:     getEnvAsFloat("TRIP_START_SPEED_KMH", 10),
		StationaryThreshold:   getEnvAsDuration("STATIONARY_THRESHOLD", time.Minute),
		ConfirmationWindow:    getEnvAsDuration("CONFIRMATION_WINDOW", 5*time.Minute),
		TimeoutHandlerTimeout: getEnvAsDuration("TIMEOUT_HANDLER_TIMEOUT", 10*time.Second),
		BroadcastConcurrency:  getEnvAsInt("BROADCAST_CONCURRENCY", 8),
		ActionTokenSecret:     os.Getenv("ACTION_TOKEN_SECRET"),
		ActionTokenTTL:        getEnvAsDuration("ACTION_TOKEN_TTL", 24*time.Hour),
	}

	// Загрузка API ключей
	apiKeysStr := os.Getenv("API_KEYS")
	if apiKeysStr != "" {
		cfg.APIKeys = strings.Split(apiKeysStr, ",")
		for i, key := range cfg.APIKeys {
			cfg.APIKeys[i] = strings.TrimSpace(key)
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.ActionTokenSecret == "" {
		return nil, fmt.Errorf("ACTION_TOKEN_SECRET environment variable is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность порогов и окон
func (c *Config) Validate() error {
	if c.ParkingSpeedKmh <= 0 {
		return fmt.Errorf("PARKING_SPEED_KMH must be positive, got %v", c.ParkingSpeedKmh)
	}
	// Полоса гистерезиса может быть нулевой ширины, но не отрицательной
	if c.TripStartSpeedKmh < c.ParkingSpeedKmh {
		return fmt.Errorf("TRIP_START_SPEED_KMH (%v) must not be lower than PARKING_SPEED_KMH (%v)",
			c.TripStartSpeedKmh, c.ParkingSpeedKmh)
	}
	if c.StationaryThreshold <= 0 {
		return fmt.Errorf("STATIONARY_THRESHOLD must be positive, got %v", c.StationaryThreshold)
	}
	if c.ConfirmationWindow <= 0 {
		return fmt.Errorf("CONFIRMATION_WINDOW must be positive, got %v", c.ConfirmationWindow)
	}
	if c.BroadcastConcurrency < 1 {
		return fmt.Errorf("BROADCAST_CONCURRENCY must be at least 1, got %d", c.BroadcastConcurrency)
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

// getEnvAsFloat возвращает значение переменной окружения как float64 или значение по умолчанию
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
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
