package log

import (
	"context"

	"github.com/rs/zerolog"
)

// MigrationLogger routes goose's migration output through the zerolog
// logger carried in the context, so schema changes show up in the normal
// application log.
type MigrationLogger struct {
	l *zerolog.Logger
}

func NewMigrationLoggerFromCtx(ctx context.Context) *MigrationLogger {
	return &MigrationLogger{l: FromCtx(ctx)}
}

func (m *MigrationLogger) Fatalf(format string, v ...any) {
	m.l.Fatal().Msgf(format, v...)
}

func (m *MigrationLogger) Printf(format string, v ...any) {
	m.l.Info().Msgf(format, v...)
}
