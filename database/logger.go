package database

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// GormLogger forwards gorm's logging to zerolog. SQL is logged at debug,
// slow queries at warn and failures at error.
type GormLogger struct {
	log zerolog.Logger
}

func NewGormLogger(log zerolog.Logger) *GormLogger {
	return &GormLogger{log: log.With().Str("component", "gorm").Logger()}
}

func (l *GormLogger) LogMode(level logger.LogLevel) logger.Interface {
	var lvl zerolog.Level
	switch level {
	case logger.Silent:
		lvl = zerolog.Disabled
	case logger.Error:
		lvl = zerolog.ErrorLevel
	case logger.Warn:
		lvl = zerolog.WarnLevel
	default:
		lvl = zerolog.DebugLevel
	}
	return &GormLogger{log: l.log.Level(lvl)}
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.log.Info().Msgf(msg, args...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.log.Warn().Msgf(msg, args...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.log.Error().Msgf(msg, args...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		l.log.Error().Err(err).Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query failed")
	case elapsed > slowQueryThreshold:
		l.log.Warn().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("slow query")
	default:
		l.log.Debug().Dur("elapsed", elapsed).Int64("rows", rows).Str("sql", sql).Msg("query")
	}
}
