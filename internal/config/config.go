package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	DatabaseURL    string `env:"DATABASE_URL,required"`
	ChatWebhookURL string `env:"CHAT_WEBHOOK_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`

	// Server
	Port           int      `env:"PORT" envDefault:"8080"`
	Environment    string   `env:"ENVIRONMENT" envDefault:"development"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	// Database pool
	DBMaxConns int32 `env:"DB_MAX_CONNS" envDefault:"20"`
	DBMinConns int32 `env:"DB_MIN_CONNS" envDefault:"5"`

	// Owner notifications via Telegram (disabled when unset)
	NotifyBotToken string `env:"NOTIFY_BOT_TOKEN"`
	NotifyChatID   int64  `env:"NOTIFY_CHAT_ID"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) NotificationsEnabled() bool {
	return c.NotifyBotToken != "" && c.NotifyChatID != 0
}
