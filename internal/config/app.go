package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v9"

	"github.com/sandevgo/locbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"LOCBOT_RUNTIME_PATH"`

	// Locale for the reserved command words and help text
	Locale string `env:"LOCBOT_LOCALE" envDefault:"en"`

	// Transport Flags
	EnableTelegram bool `env:"LOCBOT_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"LOCBOT_ENABLE_CLI" envDefault:"true"`

	// How many transcript entries the audit queries return at most
	TranscriptLimit int `env:"LOCBOT_TRANSCRIPT_LIMIT" envDefault:"50"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	// Keep the database and history files next to the .env file.
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "locbot.db")
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}
