package infra

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full environment configuration, loaded once at startup and
// provided through fx.
type Config struct {
	Port        string
	PostgresURL string

	JWTSecret          string
	AccessTokenTTL     time.Duration
	RememberMeTokenTTL time.Duration
	RefreshTokenTTL    time.Duration

	LogLevel  string
	LogFormat string

	RedisURL string

	InsightsProvider string // gemini | openai | off
	GeminiAPIKey     string
	OpenAIAPIKey     string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	BackupPollInterval time.Duration
}

// LoadConfig reads .env (when present) and the process environment. It fails
// when JWT_SECRET is unset: the service must not fall back to a baked-in
// signing secret.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		PostgresURL:        os.Getenv("POSTGRES_URL"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AccessTokenTTL:     getDuration("JWT_EXPIRES_IN", 24*time.Hour),
		RememberMeTokenTTL: getDuration("JWT_REMEMBER_ME_EXPIRES_IN", 7*24*time.Hour),
		RefreshTokenTTL:    getDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "json"),
		RedisURL:           os.Getenv("REDIS_URL"),
		InsightsProvider:   getEnv("INSIGHTS_PROVIDER", "off"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		SMTPHost:           os.Getenv("SMTP_HOST"),
		SMTPPort:           getInt("SMTP_PORT", 587),
		SMTPUsername:       os.Getenv("SMTP_USER"),
		SMTPPassword:       os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:           os.Getenv("SMTP_FROM"),
		BackupPollInterval: getDuration("BACKUP_POLL_INTERVAL", 0),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set; refusing to start")
	}
	if cfg.PostgresURL == "" {
		return nil, errors.New("POSTGRES_URL is not set")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
