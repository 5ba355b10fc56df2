package logging

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormLogger routes GORM's SQL logging through logrus so that query logs
// carry the same trace fields as the rest of the service.
type GormLogger struct {
	Level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(level gormlogger.LogLevel) *GormLogger {
	return &GormLogger{Level: level, SlowThreshold: time.Second}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.Level = level
	return &clone
}

func (l *GormLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Info {
		Infof(ctx, msg, args...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Warn {
		Warnf(ctx, msg, args...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	if l.Level >= gormlogger.Error {
		Errorf(ctx, msg, args...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.Level <= gormlogger.Silent {
		return
	}

	elapsed := time.Since(begin)
	sql, rows := fc()
	entry := WithFields(ctx, map[string]interface{}{
		"db.statement":     sql,
		"db.rows_affected": rows,
		"db.duration_ms":   float64(elapsed.Microseconds()) / 1000,
	})

	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.Level >= gormlogger.Error:
		entry.WithError(err).Error("query failed")
	case l.SlowThreshold > 0 && elapsed > l.SlowThreshold && l.Level >= gormlogger.Warn:
		entry.Warn("slow query")
	case l.Level >= gormlogger.Info:
		entry.Debug("query")
	}
}
