package main

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/sandevgo/locbot/internal/config"
	"github.com/sandevgo/locbot/internal/core"
	"github.com/sandevgo/locbot/internal/service/dialog"
	"github.com/sandevgo/locbot/internal/service/location"
	"github.com/sandevgo/locbot/internal/storage/sqlite"
	"github.com/sandevgo/locbot/internal/transport/cli"
	"github.com/sandevgo/locbot/internal/transport/telegram"
	"github.com/sandevgo/locbot/pkg/log"
	"github.com/sandevgo/locbot/pkg/srv"
)

func NewServices(ctx context.Context) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)

	// 2. Storage
	db, places, transcript, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Reserved-word resources
	res, err := dialog.LoadResources(appCfg.Locale)
	if err != nil {
		logger.Fatal().Err(err).Str("locale", appCfg.Locale).Msg("failed to load dialog resources")
	}

	// 4. Root dialog factory: every idle conversation starts a fresh capture
	newRoot := func() core.Dialog {
		return location.NewCapture(res, places)
	}

	// 5. Transports
	transports, err := initTransports(ctx, appCfg, newRoot, transcript)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	services = append(services, transports...)

	return services
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.PlacesRepository, core.TranscriptRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, nil, err
	}
	return db, sqlite.NewPlacesRepo(db), sqlite.NewTranscriptRepo(db), nil
}

func initTransports(ctx context.Context, cfg *config.AppConfig, newRoot func() core.Dialog, transcript core.TranscriptRepository) ([]srv.Service, error) {
	var services []srv.Service

	// Telegram Bot
	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, newRoot, transcript)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	// Local console
	if cfg.IsCLISelected() {
		console, err := cli.NewReadLine(cfg, newRoot, transcript)
		if err != nil {
			return nil, err
		}
		services = append(services, console)
	}

	return services, nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
