package config

import (
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Telegram
	TelegramToken   string        `env:"TELEGRAM_BOT_TOKEN"  envDefault:""`
	TelegramAPIURL  string        `env:"TELEGRAM_API_URL"    envDefault:"https://api.telegram.org"`
	TelegramTimeout time.Duration `env:"TELEGRAM_TIMEOUT"    envDefault:"10s"`
	WebhookSecret   string        `env:"WEBHOOK_SECRET"      envDefault:""`

	// Classifier
	OpenAIAPIKey      string        `env:"OPENAI_API_KEY"      envDefault:""`
	OpenAIModel       string        `env:"OPENAI_MODEL"        envDefault:"gpt-4o-mini"`
	ClassifierTimeout time.Duration `env:"CLASSIFIER_TIMEOUT"  envDefault:"10s"`

	// Bookkeeping defaults
	DefaultCurrency string  `env:"DEFAULT_CURRENCY" envDefault:"UAH"`
	VATRatePercent  float64 `env:"VAT_RATE_PERCENT" envDefault:"20"`

	// Session store (empty REDIS_URL keeps sessions in process memory)
	RedisURL   string        `env:"REDIS_URL"   envDefault:""`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"0"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load loads configuration from a .env file, when present, and the
// environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
