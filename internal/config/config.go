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
	HTTPPort  string `env:"HTTP_PORT" envDefault:"8000"`
	APIPrefix string `env:"API_PREFIX" envDefault:"/api/v1"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`

	// Redis Config
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Identity store (read-only users table)
	IdentityDatabaseURL string `env:"IDENTITY_DATABASE_URL"`

	// SMS gateway
	TwilioAccountSID          string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken           string `env:"TWILIO_AUTH_TOKEN"`
	TwilioPhoneNumber         string `env:"TWILIO_PHONE_NUMBER"`
	TwilioMessagingServiceSID string `env:"TWILIO_MESSAGING_SERVICE_SID"`
	SMSDefaultCountryCode     string `env:"SMS_DEFAULT_COUNTRY_CODE" envDefault:"91"`

	// Webhook Config
	WebhookURL        string        `env:"WEBHOOK_URL"`
	WebhookSecret     string        `env:"WEBHOOK_SECRET"`
	WebhookTimeout    time.Duration `env:"WEBHOOK_TIMEOUT" envDefault:"5s"`
	WebhookMaxRetries int           `env:"WEBHOOK_MAX_RETRIES" envDefault:"3"`
	WebhookBaseDelay  time.Duration `env:"WEBHOOK_BASE_DELAY" envDefault:"1s"`

	// Rate limiting, ulule/limiter formatted rate
	RateLimit string `env:"RATE_LIMIT" envDefault:"100-M"`

	// Retention
	LocationCurrentTTL time.Duration `env:"LOCATION_CURRENT_TTL" envDefault:"1h"`
	LocationHistoryTTL time.Duration `env:"LOCATION_HISTORY_TTL" envDefault:"24h"`
	LocationHistoryMax int           `env:"LOCATION_HISTORY_MAX" envDefault:"1000"`
	TrackingIdleTTL    time.Duration `env:"TRACKING_IDLE_TTL" envDefault:"1h"`
	TrackingStartTTL   time.Duration `env:"TRACKING_START_TTL" envDefault:"24h"`
	EmergencyRetention time.Duration `env:"EMERGENCY_RETENTION" envDefault:"24h"`
	ActiveEmergencyMax int           `env:"ACTIVE_EMERGENCY_MAX" envDefault:"100"`

	// WebSocket
	WSSendBuffer     int           `env:"WS_SEND_BUFFER" envDefault:"256"`
	WSPingInterval   time.Duration `env:"WS_PING_INTERVAL" envDefault:"25s"`
	WSPongWait       time.Duration `env:"WS_PONG_WAIT" envDefault:"60s"`
	WSMaxMessageSize int64         `env:"WS_MAX_MESSAGE_SIZE" envDefault:"8192"`
	WSAllowedOrigins []string      `env:"WS_ALLOWED_ORIGINS"`
}

// LoadConfig загружает конфигурацию из переменных окружения и .env файла
func LoadConfig() (*Config, error) {
	// Загрузка переменных окружения из .env файла (если есть)
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		HTTPPort:                  getEnv("HTTP_PORT", "8000"),
		APIPrefix:                 getEnv("API_PREFIX", "/api/v1"),
		AppEnv:                    getEnv("APP_ENV", "development"),
		LogLevel:                  getEnv("LOG_LEVEL", "info"),
		RedisAddr:                 getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPass:                 os.Getenv("REDIS_PASSWORD"),
		RedisDB:                   getEnvAsInt("REDIS_DB", 0),
		IdentityDatabaseURL:       os.Getenv("IDENTITY_DATABASE_URL"),
		TwilioAccountSID:          os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:           os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:         os.Getenv("TWILIO_PHONE_NUMBER"),
		TwilioMessagingServiceSID: os.Getenv("TWILIO_MESSAGING_SERVICE_SID"),
		SMSDefaultCountryCode:     getEnv("SMS_DEFAULT_COUNTRY_CODE", "91"),
		WebhookURL:                os.Getenv("WEBHOOK_URL"),
		WebhookSecret:             os.Getenv("WEBHOOK_SECRET"),
		WebhookTimeout:            getEnvAsDuration("WEBHOOK_TIMEOUT", 5*time.Second),
		WebhookMaxRetries:         getEnvAsInt("WEBHOOK_MAX_RETRIES", 3),
		WebhookBaseDelay:          getEnvAsDuration("WEBHOOK_BASE_DELAY", time.Second),
		RateLimit:                 getEnv("RATE_LIMIT", "100-M"),
		LocationCurrentTTL:        getEnvAsDuration("LOCATION_CURRENT_TTL", time.Hour),
		LocationHistoryTTL:        getEnvAsDuration("LOCATION_HISTORY_TTL", 24*time.Hour),
		LocationHistoryMax:        getEnvAsInt("LOCATION_HISTORY_MAX", 1000),
		TrackingIdleTTL:           getEnvAsDuration("TRACKING_IDLE_TTL", time.Hour),
		TrackingStartTTL:          getEnvAsDuration("TRACKING_START_TTL", 24*time.Hour),
		EmergencyRetention:        getEnvAsDuration("EMERGENCY_RETENTION", 24*time.Hour),
		ActiveEmergencyMax:        getEnvAsInt("ACTIVE_EMERGENCY_MAX", 100),
		WSSendBuffer:              getEnvAsInt("WS_SEND_BUFFER", 256),
		WSPingInterval:            getEnvAsDuration("WS_PING_INTERVAL", 25*time.Second),
		WSPongWait:                getEnvAsDuration("WS_PONG_WAIT", 60*time.Second),
		WSMaxMessageSize:          int64(getEnvAsInt("WS_MAX_MESSAGE_SIZE", 8192)),
	}

	// Разрешенные Origin для WebSocket
	if origins := os.Getenv("WS_ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.WSAllowedOrigins = append(cfg.WSAllowedOrigins, origin)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет значения, от которых зависит хранение состояния
func (c *Config) Validate() error {
	durations := map[string]time.Duration{
		"LOCATION_CURRENT_TTL": c.LocationCurrentTTL,
		"LOCATION_HISTORY_TTL": c.LocationHistoryTTL,
		"TRACKING_IDLE_TTL":    c.TrackingIdleTTL,
		"TRACKING_START_TTL":   c.TrackingStartTTL,
		"EMERGENCY_RETENTION":  c.EmergencyRetention,
	}
	for name, d := range durations {
		if d <= 0 {
			return fmt.Errorf("%s must be positive, got %s", name, d)
		}
	}
	if c.LocationHistoryMax <= 0 {
		return fmt.Errorf("LOCATION_HISTORY_MAX must be positive, got %d", c.LocationHistoryMax)
	}
	if c.ActiveEmergencyMax <= 0 {
		return fmt.Errorf("ACTIVE_EMERGENCY_MAX must be positive, got %d", c.ActiveEmergencyMax)
	}
	if c.WSPingInterval >= c.WSPongWait {
		return fmt.Errorf("WS_PING_INTERVAL (%s) must be shorter than WS_PONG_WAIT (%s)", c.WSPingInterval, c.WSPongWait)
	}
	return nil
}

// IsProduction сообщает, нужно ли скрывать подробности внутренних ошибок
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
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
